package drive

import (
	"context"

	drive "google.golang.org/api/drive/v3"
)

// MoveToFolder reparents a newly created file from My Drive's root into
// folderID.
func MoveToFolder(ctx context.Context, svc *drive.Service, fileID, folderID string) error {
	_, err := svc.Files.Update(fileID, &drive.File{}).
		AddParents(folderID).
		RemoveParents("root").
		Fields("id, parents").
		Context(ctx).
		Do()
	return err
}
