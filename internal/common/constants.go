package common

// Remote object naming. These values are part of the interchange contract
// with other notedrive clients and must not change.
const (
	// RootFolderName is the application folder created at the top level of
	// the remote store.
	RootFolderName = "MyNotesKeep"

	// NotesFolderName holds one JSON object per note.
	NotesFolderName = "notes"

	// AttachmentsFolderName holds raw attachment blobs.
	AttachmentsFolderName = "attachments"

	// MetadataFileName is the single shared descriptor object in the root
	// folder (labels, trash ids, last-sync stamp).
	MetadataFileName = "metadata.json"

	// NoteFileSuffix is appended to a note id to form its object name.
	NoteFileSuffix = ".json"
)

// SchemaVersion tags exported documents and the remote metadata descriptor.
const SchemaVersion = "2.0"

// AnonymousOwner is the owner id used when no user is signed in. Local
// storage keys and the metadata descriptor fall back to it.
const AnonymousOwner = "global"
