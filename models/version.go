package models

import "time"

// NoteVersion is a single entry of a note's version history.
// The listing endpoint returns versions newest-first; by convention the
// current version is first with IsCurrent set.
type NoteVersion struct {
	// ID is the unique identifier of this version entry.
	ID string `json:"id"`

	// Title is the note heading as of this version.
	Title string `json:"title"`

	// Description is the note body as of this version.
	Description string `json:"description"`

	// CreatedAt is the timestamp when this version was recorded.
	CreatedAt time.Time `json:"createdAt,omitzero"`

	// IsCurrent marks the version the note currently shows.
	IsCurrent bool `json:"isCurrent"`
}

// RevertNoteRequest is the payload for POST /notes/:id/revert.
type RevertNoteRequest struct {
	VersionID string `json:"versionId"`
}

// VersionDiff annotates which fields of a version differ from the next-older
// one. The oldest version has no comparison target and yields no diff.
type VersionDiff struct {
	// TitleChanged is true when the title differs from the previous version.
	TitleChanged bool

	// DescriptionChanged is true when the body differs from the previous
	// version.
	DescriptionChanged bool
}

// Empty reports whether the diff detected no changed fields.
func (d VersionDiff) Empty() bool {
	return !d.TitleChanged && !d.DescriptionChanged
}
