package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/klauspost/compress/zstd"
)

// DownloadReport fetches a generated report document. Reports are
// served zstd-compressed to keep transfers small; the body is
// decompressed transparently when the server says so.
func (c *Client) DownloadReport(ctx context.Context, reportID string) ([]byte, error) {
	if c.token == "" {
		return nil, ErrMissingToken()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/reports/"+reportID+"/download", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build report request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept-Encoding", "zstd")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, ErrRequestFailed().SetDebug(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, serverError("report_download_failed",
			fmt.Sprintf("report download failed (http %d)", resp.StatusCode),
			resp.StatusCode)
	}

	body := resp.Body
	if resp.Header.Get("Content-Encoding") == "zstd" {
		dec, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd reader: %w", err)
		}
		defer dec.Close()
		body = io.NopCloser(dec)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read report body: %w", err)
	}
	return data, nil
}
