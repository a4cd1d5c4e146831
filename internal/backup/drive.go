package backup

import (
	"bytes"
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	DefaultDriveFolder = "activeweek-backup"
	folderMimeType     = "application/vnd.google-apps.folder"
)

type DriveParams struct {
	FolderName string
	// ShareWith, when set, gets reader access to the backups folder.
	ShareWith string
}

// DriveDestination uploads backups into one Google Drive folder.
type DriveDestination struct {
	service  *drive.Service
	folderID string
}

// NewDriveDestination finds the backups folder, creating it when missing.
// Credentials come in through opts, e.g. option.WithCredentialsJSON.
func NewDriveDestination(ctx context.Context, params DriveParams, opts ...option.ClientOption) (*DriveDestination, error) {
	if params.FolderName == "" {
		params.FolderName = DefaultDriveFolder
	}

	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve drive client: %w", err)
	}

	folderQuery := fmt.Sprintf("mimeType = '%s' and trashed = false and name = '%s'", folderMimeType, params.FolderName)
	found, err := driveService.Files.List().
		Q(folderQuery).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list drive folders: %w", err)
	}

	d := &DriveDestination{service: driveService}
	switch len(found.Files) {
	case 0:
		log.Printf("drive backups folder %s not found, creating", params.FolderName)
		folder, err := driveService.Files.Create(&drive.File{
			Name:     params.FolderName,
			MimeType: folderMimeType,
		}).Fields("id").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("create drive backups folder: %w", err)
		}
		d.folderID = folder.Id
		if params.ShareWith != "" {
			if err := d.share(ctx, params.ShareWith); err != nil {
				return nil, err
			}
		}
	case 1:
		d.folderID = found.Files[0].Id
	default:
		log.Warnf("found %d drive folders named %s, using the first: %s", len(found.Files), params.FolderName, found.Files[0].Id)
		d.folderID = found.Files[0].Id
	}

	return d, nil
}

func (d *DriveDestination) Name() string {
	return "drive"
}

func (d *DriveDestination) FolderID() string {
	return d.folderID
}

func (d *DriveDestination) Store(ctx context.Context, fileName string, payload []byte) error {
	created, err := d.service.Files.Create(&drive.File{
		Name:     fileName,
		MimeType: "application/json",
		Parents:  []string{d.folderID},
	}).Fields("id").Media(bytes.NewReader(payload)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("upload %s: %w", fileName, err)
	}

	log.Debugf("drive backup %s uploaded: %s", fileName, created.Id)
	return nil
}

func (d *DriveDestination) share(ctx context.Context, email string) error {
	_, err := d.service.Permissions.Create(d.folderID, &drive.Permission{
		EmailAddress: email,
		Type:         "user",
		Role:         "reader",
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("share drive backups folder with %s: %w", email, err)
	}
	return nil
}
