package habit

// ListOptions provides filtering options for listing habits.
type ListOptions struct {
	SpaceID   string
	Frequency Frequency
}
