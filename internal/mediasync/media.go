// Package mediasync keeps at most one section media item active while a
// reader scrolls through a rendered document.
package mediasync

// SectionMedia is an illustration bound to a document heading. Exactly one
// of Image or Sequence is set.
type SectionMedia struct {
	ID string `json:"id"`
	// Heading is the exact trimmed text of the H2 the item attaches to.
	// Matching is literal, not fuzzy; duplicate headings bind first-match.
	Heading  string    `json:"heading"`
	Image    *Image    `json:"image,omitempty"`
	Sequence *Sequence `json:"sequence,omitempty"`
}

// Image is a static illustration.
type Image struct {
	URL string `json:"url"`
}

// Step is one named clip of an animation sequence. Text is descriptive copy
// used for search indexing, not by the synchronizer.
type Step struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Text string `json:"text,omitempty"`
}

// Sequence is a multi-step animation with an optional one-shot intro clip
// and background image.
type Sequence struct {
	Intro      string `json:"intro,omitempty"`
	Steps      []Step `json:"steps"`
	Loop       bool   `json:"loop,omitempty"`
	Autoplay   bool   `json:"autoplay,omitempty"`
	Background string `json:"background,omitempty"`
}
