package badge

// BadgeType is a static catalog entry describing one achievement.
type BadgeType struct {
	Key         string
	DisplayName string
	Description string
}

// FallbackDescription is shown for keys that have no dedicated description.
const FallbackDescription = "Achievement badge for completing a phase."

// catalog is fixed at build time. Order is the order the quest phases are presented in.
var catalog = []BadgeType{
	{Key: "pitch-master", DisplayName: "Pitch Master", Description: "Awarded for completing the Pitch & Scale phase."},
	{Key: "ideation-expert", DisplayName: "Ideation Expert", Description: "Awarded for completing the Ideation phase."},
	{Key: "validation-pro", DisplayName: "Validation Pro", Description: "Awarded for completing the Validation phase."},
	{Key: "mvp-builder", DisplayName: "MVP Builder", Description: "Awarded for completing the MVP phase."},
	{Key: "launch-champion", DisplayName: "Launch Champion", Description: "Awarded for completing the Launch phase."},
	{Key: "feedback-guru", DisplayName: "Feedback Guru", Description: "Awarded for completing the Feedback & Iterate phase."},
	{Key: "monetization-master", DisplayName: "Monetization Master", Description: "Awarded for completing the Monetization phase."},
}

var catalogIndex = func() map[string]BadgeType {
	idx := make(map[string]BadgeType, len(catalog))
	for _, bt := range catalog {
		if _, dup := idx[bt.Key]; dup {
			panic("badge: duplicate catalog key " + bt.Key)
		}
		idx[bt.Key] = bt
	}
	return idx
}()

// LookupBadgeType returns the catalog entry for key.
func LookupBadgeType(key string) (BadgeType, bool) {
	bt, ok := catalogIndex[key]
	return bt, ok
}

// Catalog returns a copy of every badge type in catalog order.
func Catalog() []BadgeType {
	out := make([]BadgeType, len(catalog))
	copy(out, catalog)
	return out
}

// DescriptionFor returns the description for key, or FallbackDescription.
func DescriptionFor(key string) string {
	if bt, ok := catalogIndex[key]; ok && bt.Description != "" {
		return bt.Description
	}
	return FallbackDescription
}
