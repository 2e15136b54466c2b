package phh

// Hand is a single poker hand in PHH interchange format. Field order
// matters: the TOML encoder emits struct fields in declaration order and
// PHH consumers expect variant first.
type Hand struct {
	Variant           string   `toml:"variant"`
	Table             string   `toml:"table,omitempty"`
	SeatCount         int      `toml:"seat_count,omitempty"`
	Seats             []int    `toml:"seats,omitempty"`
	Antes             []int    `toml:"antes"`
	BlindsOrStraddles []string `toml:"blinds_or_straddles"`
	MinBet            string   `toml:"min_bet"`
	StartingStacks    []int    `toml:"starting_stacks"`
	Actions           []string `toml:"actions"`
	Players           []string `toml:"players,omitempty"`
	HandID            string   `toml:"hand"`
	Event             string   `toml:"event,omitempty"`
	Currency          string   `toml:"currency,omitempty"`
	Time              string   `toml:"time,omitempty"`
	TimeZone          string   `toml:"time_zone,omitempty"`
	Day               int      `toml:"day,omitempty"`
	Month             int      `toml:"month,omitempty"`
	Year              int      `toml:"year,omitempty"`
}
