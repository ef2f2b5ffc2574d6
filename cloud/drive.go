// Package cloud backs the shop up to a single JSON file in Google Drive.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/etnz/goldbook"
	"github.com/go-resty/resty/v2"
)

const (
	// BackupFileName is the name of the backup file in Drive.
	BackupFileName = "PyramidsGold_Backup.json"
	// DefaultBaseURL is the Google APIs root.
	DefaultBaseURL = "https://www.googleapis.com"
)

// Drive is a minimal Google Drive files client handling one named file.
type Drive struct {
	r    *resty.Client
	name string
}

// NewDrive returns a client sending its requests with hc, which is
// expected to authenticate them (see Config.Client).
func NewDrive(hc *http.Client, baseURL string) *Drive {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	r := resty.NewWithClient(hc).SetBaseURL(baseURL)
	return &Drive{r: r, name: BackupFileName}
}

type driveFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type fileList struct {
	Files []driveFile `json:"files"`
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("drive %s %s: %s", resp.Request.Method, resp.Request.URL, resp.Status())
	}
	return nil
}

// Find returns the id of the backup file, "" when there is none.
func (d *Drive) Find(ctx context.Context) (string, error) {
	var list fileList
	resp, err := d.r.R().SetContext(ctx).
		SetQueryParams(map[string]string{
			"pageSize": "1",
			"fields":   "files(id, name)",
			"q":        fmt.Sprintf("name = '%s' and trashed = false", d.name),
		}).
		SetResult(&list).
		ForceContentType("application/json").
		Get("/drive/v3/files")
	if err := check(resp, err); err != nil {
		return "", err
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].ID, nil
}

// Upload writes data to the backup file, updating it when it exists and
// creating it otherwise. It returns the file id.
func (d *Drive) Upload(ctx context.Context, data []byte) (id string, created bool, err error) {
	id, err = d.Find(ctx)
	if err != nil {
		return "", false, err
	}
	if id != "" {
		resp, err := d.r.R().SetContext(ctx).
			SetPathParam("id", id).
			SetQueryParam("uploadType", "media").
			SetHeader("Content-Type", "application/json").
			SetBody(data).
			Patch("/upload/drive/v3/files/{id}")
		return id, false, check(resp, err)
	}

	meta, err := json.Marshal(map[string]string{"name": d.name, "mimeType": "application/json"})
	if err != nil {
		return "", false, err
	}
	var file driveFile
	resp, err := d.r.R().SetContext(ctx).
		SetQueryParam("uploadType", "multipart").
		SetMultipartField("metadata", "", "application/json", bytes.NewReader(meta)).
		SetMultipartField("file", d.name, "application/json", bytes.NewReader(data)).
		SetResult(&file).
		ForceContentType("application/json").
		Post("/upload/drive/v3/files")
	if err := check(resp, err); err != nil {
		return "", false, err
	}
	if file.ID == "" {
		return "", false, fmt.Errorf("drive created %s without returning its id", d.name)
	}
	return file.ID, true, nil
}

// Download returns the content of the backup file, goldbook.ErrNoBackup when
// there is none.
func (d *Drive) Download(ctx context.Context) ([]byte, error) {
	id, err := d.Find(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, goldbook.ErrNoBackup
	}
	resp, err := d.r.R().SetContext(ctx).
		SetPathParam("id", id).
		SetQueryParam("alt", "media").
		Get("/drive/v3/files/{id}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	if len(resp.Body()) == 0 {
		return nil, errors.New("empty backup file")
	}
	return resp.Body(), nil
}
