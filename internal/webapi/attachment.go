package webapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"ticktick-cli/internal/logging"
	"ticktick-cli/internal/model"
)

// newAttachmentID constructs a 24-character lowercase hex identifier in the
// backend's own format: 8 hex chars of the Unix timestamp followed by 16
// random hex chars.
func newAttachmentID(now time.Time) string {
	return fmt.Sprintf("%08x", now.Unix()) + randomHex(8)
}

// UploadAttachment uploads a local file to a task. The attachment id is
// generated client-side, mirroring what the vendor's web client does, and
// the upload endpoint lives on a different path version than the rest of
// this interface. This is the one operation that requires the CSRF token.
func (c *Client) UploadAttachment(ctx context.Context, projectID, taskID, filePath string) (*model.Attachment, error) {
	if err := c.Login(ctx); err != nil {
		return nil, err
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment file: %w", err)
	}

	filename := filepath.Base(filePath)
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	// The boundary matches the WebKit format the real web client produces.
	if err := writer.SetBoundary("----WebKitFormBoundary" + randomHex(8)); err != nil {
		return nil, fmt.Errorf("failed to set multipart boundary: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(fileData); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	attachmentID := newAttachmentID(time.Now())
	pid := url.PathEscape(projectID)
	tid := url.PathEscape(taskID)
	uploadURL := fmt.Sprintf("%s/api/v1/attachment/upload/%s/%s/%s",
		c.attachmentBaseURL, pid, tid, attachmentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	c.setHeaders(req, writer.FormDataContentType())
	req.Header.Set("Accept", "*/*")
	if c.csrfToken != "" {
		req.Header.Set("x-csrftoken", c.csrfToken)
		req.Header.Set("Cookie", "t="+c.sessionToken+"; _csrf_token="+c.csrfToken)
	}

	c.logger.Debug("uploading attachment",
		logging.Project(projectID), logging.Task(taskID),
		slog.String("file", filename))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload attachment request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Op: "upload attachment", StatusCode: resp.StatusCode, Body: string(data)}
	}

	var attachment model.Attachment
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &attachment); err != nil {
			return nil, fmt.Errorf("failed to decode upload response: %w", err)
		}
	}
	attachment.AttachmentURL = fmt.Sprintf("%s/api/v1/attachment/%s/%s/%s",
		c.origin, pid, tid, attachmentID)
	return &attachment, nil
}
