package catalog

import (
	"catview/domain/core"
)

// Dataset is the stored metadata for one uploaded (or preconfigured)
// spreadsheet file. The parsed table itself is not persisted; it is re-read
// from FilePath and held as an in-memory snapshot.
type Dataset struct {
	ID               core.DatasetID `json:"id"`
	OriginalFilename string         `json:"original_filename"`
	FilePath         string         `json:"file_path"`
	FileSize         int64          `json:"file_size"`
	MimeType         string         `json:"mime_type"`
	Sheets           []string       `json:"sheets"`
	CreatedAt        core.Timestamp `json:"created_at"`
}

// Session is one viewer's state against a loaded dataset: the sheet in use,
// the resolved role mapping, and the cascade selections built so far. The
// filter itself stays pure; the session is passed into it on every
// interaction.
type Session struct {
	ID         core.SessionID `json:"id"`
	DatasetID  core.DatasetID `json:"dataset_id"`
	Sheet      string         `json:"sheet"`
	Mapping    Mapping        `json:"mapping"`
	Selections Selections     `json:"selections"`
	CreatedAt  core.Timestamp `json:"created_at"`
	UpdatedAt  core.Timestamp `json:"updated_at"`
}
