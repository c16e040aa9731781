package model

// Quote is a motivational quote shown on the home view.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// PlaceholderQuote is shown when the quote service is unavailable.
var PlaceholderQuote = Quote{
	Text:   "Small steps every day.",
	Author: "HabitChain",
}
