// Package supabase implements the table CRUD and blob storage ports
// against a Supabase backend. The client uses the service-role key and
// must only ever run server-side.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"
	storage_go "github.com/supabase-community/storage-go"
	supa "github.com/supabase-community/supabase-go"
	"go.uber.org/zap"

	apperrors "studymesh-backend/pkg/errors"
)

// StorageBucket is the bucket holding uploaded material files.
const StorageBucket = "materials"

// Client wraps the Supabase SDK behind the application's TableStore and
// BlobStore ports.
type Client struct {
	api    *supa.Client
	logger *zap.Logger
}

// NewClient connects to a Supabase project. The serviceKey is the
// privileged server-side key and is never echoed in logs or responses.
func NewClient(url, serviceKey string, logger *zap.Logger) (*Client, error) {
	if url == "" || serviceKey == "" {
		return nil, apperrors.NewValidationError("supabase url and service key are required")
	}

	api, err := supa.NewClient(url, serviceKey, &supa.ClientOptions{})
	if err != nil {
		return nil, apperrors.NewExternalError("supabase", err)
	}

	return &Client{api: api, logger: logger}, nil
}

// Select reads all rows from a table with optional ordering. Query errors
// surface as database errors with the backend's message as detail.
func (c *Client) Select(_ context.Context, table, orderBy string, ascending bool) ([]map[string]interface{}, error) {
	query := c.api.From(table).Select("*", "exact", false)
	if orderBy != "" {
		query = query.Order(orderBy, &postgrest.OrderOpts{Ascending: ascending})
	}

	data, _, err := query.Execute()
	if err != nil {
		// Bad table or column names come back as query errors; the contract
		// reports those as 400 with the backend's message in details.
		return nil, apperrors.NewValidationError("query failed").
			WithDetails(map[string]interface{}{"table": table, "cause": err.Error()}).
			WithCause(err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, apperrors.NewDatabaseError("decode rows", err)
	}
	return rows, nil
}

// Insert writes one row and returns the inserted representation.
func (c *Client) Insert(_ context.Context, table string, row map[string]interface{}) (map[string]interface{}, error) {
	data, _, err := c.api.From(table).Insert(row, false, "", "representation", "").Execute()
	if err != nil {
		return nil, apperrors.NewValidationError("insert failed").
			WithDetails(map[string]interface{}{"table": table, "cause": err.Error()}).
			WithCause(err)
	}

	var inserted []map[string]interface{}
	if err := json.Unmarshal(data, &inserted); err != nil {
		return nil, apperrors.NewDatabaseError("decode inserted row", err)
	}
	if len(inserted) == 0 {
		return nil, apperrors.NewDatabaseError("insert", fmt.Errorf("no row returned"))
	}
	return inserted[0], nil
}

// Delete removes one row by id.
func (c *Client) Delete(_ context.Context, table, id string) error {
	_, _, err := c.api.From(table).Delete("", "").Eq("id", id).Execute()
	if err != nil {
		return apperrors.NewValidationError("delete failed").
			WithDetails(map[string]interface{}{"table": table, "id": id, "cause": err.Error()}).
			WithCause(err)
	}
	return nil
}

// Upload stores a blob in the materials bucket under a timestamped name
// and returns its public URL.
func (c *Client) Upload(_ context.Context, name, mimeType string, data []byte) (string, error) {
	objectPath := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), name)

	_, err := c.api.Storage.UploadFile(StorageBucket, objectPath, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &mimeType,
	})
	if err != nil {
		return "", apperrors.NewStorageError("upload", err).WithDetails(map[string]interface{}{
			"bucket": StorageBucket,
			"hint":   "create the bucket in the Supabase dashboard if it does not exist",
		})
	}

	public := c.api.Storage.GetPublicUrl(StorageBucket, objectPath)

	c.logger.Debug("blob stored",
		zap.String("bucket", StorageBucket),
		zap.String("object", objectPath),
		zap.Int("size", len(data)),
	)
	return public.SignedURL, nil
}
