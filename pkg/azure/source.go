package azure

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/LambdaTest/xdist-tracker/pkg/constants"
	"github.com/LambdaTest/xdist-tracker/pkg/core"
	errs "github.com/LambdaTest/xdist-tracker/pkg/errors"
)

type recordSource struct {
	store    core.AzureBlob
	blobPath string
}

// NewRecordSource returns a replay source reading blobPath from the store.
func NewRecordSource(store core.AzureBlob, blobPath string) core.RecordSource {
	return &recordSource{store: store, blobPath: blobPath}
}

// IsRemoteSource reports whether a replay source lives in azure blob storage.
func IsRemoteSource(source string) bool {
	return strings.HasPrefix(source, constants.AzureSourceScheme)
}

// BlobPath strips the azure scheme from a replay source.
func BlobPath(source string) string {
	return strings.TrimPrefix(source, constants.AzureSourceScheme)
}

func (r *recordSource) Open(ctx context.Context) (io.ReadCloser, error) {
	rc, err := r.store.DownloadStream(ctx, r.blobPath)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ReplaySourceNotFound(r.String(), err)
		}
		return nil, err
	}
	return rc, nil
}

func (r *recordSource) String() string {
	return constants.AzureSourceScheme + r.blobPath
}
