package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	importDirectoryMessageType = "posts.markdown.import_directory"
	syncDirectoryMessageType   = "posts.markdown.sync_directory"
)

// ImportDirectoryCommand triggers a filesystem walk for markdown articles
// under the provided Directory and applies the batch to the document store.
type ImportDirectoryCommand struct {
	// Directory selects the path, relative to the configured base, to load markdown files from.
	Directory string `json:"directory"`
	// DryRun evaluates the batch and reports the diff without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("posts.markdown.import_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// SyncDirectoryCommand orchestrates a full sync run for the provided
// Directory, optionally removing documents whose source files disappeared.
type SyncDirectoryCommand struct {
	// Directory selects the path, relative to the configured base, to load markdown files from.
	Directory string `json:"directory"`
	// DryRun evaluates the batch and reports the diff without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
	// DeleteOrphaned removes stored documents without matching markdown files when true.
	DeleteOrphaned bool `json:"delete_orphaned,omitempty"`
}

// Type implements command.Message.
func (SyncDirectoryCommand) Type() string { return syncDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd SyncDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("posts.markdown.sync_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
