package azure

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/Azure/azure-storage-blob-go/azblob"
	"github.com/LambdaTest/xdist-tracker/config"
	"github.com/LambdaTest/xdist-tracker/pkg/constants"
	"github.com/LambdaTest/xdist-tracker/pkg/core"
	errs "github.com/LambdaTest/xdist-tracker/pkg/errors"
	"github.com/LambdaTest/xdist-tracker/pkg/lumber"
	"github.com/LambdaTest/xdist-tracker/pkg/utils"
	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
)

// store represents the azure storage
type store struct {
	sharedKeyCredential *azblob.SharedKeyCredential
	logger              lumber.Logger
	containerName       string
	folder              string
	attempts            uint
	delay               time.Duration
	service             azblob.ServiceURL
}

const (
	defaultBufferSize  = 4 * 1024 * 1024
	defaultParallelism = 16
	sasLinkTimeout     = 12 * time.Hour
	maxRetryRequests   = 5
)

// NewAzureBlobEnv returns a new Azure blob store.
func NewAzureBlobEnv(cfg *config.Config, logger lumber.Logger) (core.AzureBlob, error) {
	if cfg.Azure.StorageAccountName == "" ||
		cfg.Azure.StorageAccessKey == "" ||
		cfg.Azure.ContainerName == "" {
		return nil, errs.ErrAzureConfig
	}
	// Create a default request pipeline using your storage account name and account key.
	credential, err := azblob.NewSharedKeyCredential(cfg.Azure.StorageAccountName, cfg.Azure.StorageAccessKey)
	if err != nil {
		logger.Errorf("Invalid azure credentials, error: %v", err)
		return nil, err
	}
	endpoint := cfg.Azure.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.blob.core.windows.net", cfg.Azure.StorageAccountName)
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		logger.Errorf("Invalid azure endpoint %s, error: %v", endpoint, err)
		return nil, err
	}
	pipe := azblob.NewPipeline(credential, azblob.PipelineOptions{})
	attempts := cfg.Azure.UploadAttempts
	if attempts == 0 {
		attempts = constants.DefaultUploadAttempts
	}

	return &store{
		sharedKeyCredential: credential,
		containerName:       cfg.Azure.ContainerName,
		folder:              cfg.Azure.Folder,
		attempts:            attempts,
		delay:               constants.DefaultUploadDelay,
		service:             azblob.NewServiceURL(*u, pipe),
		logger:              logger,
	}, nil
}

func (s *store) blobURL(blobPath string) azblob.BlockBlobURL {
	containerURL := s.service.NewContainerURL(s.containerName)
	return containerURL.NewBlockBlobURL(utils.RecordBlobPath(s.folder, blobPath))
}

// UploadFile uploads a flushed record file, retrying transient failures.
func (s *store) UploadFile(ctx context.Context, blobPath, localPath string) (string, error) {
	rawBytes, err := os.ReadFile(localPath)
	if err != nil {
		s.logger.Errorf("failed to read %s for upload, error %v", localPath, err)
		return "", err
	}
	var blobURL string
	err = retry.Do(
		func() error {
			var uploadErr error
			blobURL, uploadErr = s.UploadBytes(ctx, blobPath, rawBytes, constants.RecordMimeType)
			return uploadErr
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Warnf("retrying upload of %s, attempt %d, error %v", localPath, n+1, err)
		}),
	)
	if err != nil {
		s.logger.Errorf("failed to upload %s, error %v", localPath, err)
		return "", errors.Wrapf(errs.ErrAzureUpload, "%v", err)
	}
	return blobURL, nil
}

func (s *store) UploadBytes(ctx context.Context, blobPath string, rawBytes []byte, mimeType string) (string, error) {
	blobURL := s.blobURL(blobPath)
	s.logger.Debugf("uploading bytes to blob %s", blobURL.String())
	_, err := azblob.UploadBufferToBlockBlob(ctx, rawBytes, blobURL, azblob.UploadToBlockBlobOptions{
		BlobHTTPHeaders: azblob.BlobHTTPHeaders{ContentType: mimeType},
		BlockSize:       defaultBufferSize,
		Parallelism:     defaultParallelism,
	})
	return blobURL.String(), err
}

func (s *store) DownloadStream(ctx context.Context, blobPath string) (io.ReadCloser, error) {
	blobURL := s.blobURL(blobPath)
	out, err := blobURL.Download(ctx, 0, azblob.CountToEnd, azblob.BlobAccessConditions{}, false, azblob.ClientProvidedKeyOptions{})
	if err != nil {
		return nil, errs.AzureError(err)
	}
	return out.Body(azblob.RetryReaderOptions{MaxRetryRequests: maxRetryRequests}), nil
}

func (s *store) GenerateSasURL(ctx context.Context, blobPath string) (string, error) {
	containerURL := s.service.NewContainerURL(s.containerName)
	fullPath := utils.RecordBlobPath(s.folder, blobPath)

	sasDefaultSignature := azblob.BlobSASSignatureValues{
		Protocol:      azblob.SASProtocolHTTPS,
		ExpiryTime:    time.Now().UTC().Add(sasLinkTimeout),
		ContainerName: s.containerName,
		BlobName:      fullPath,
		Permissions:   azblob.BlobSASPermissions{Read: true}.String(),
	}
	sasQueryParams, err := sasDefaultSignature.NewSASQueryParameters(s.sharedKeyCredential)
	if err != nil {
		s.logger.Errorf("failed to generated sas query params, error %v", err)
		return "", err
	}

	parts := azblob.BlobURLParts{
		Scheme:        containerURL.URL().Scheme,
		Host:          containerURL.URL().Host,
		ContainerName: s.containerName,
		BlobName:      fullPath,
		SAS:           sasQueryParams,
	}

	rawURL := parts.URL()
	return rawURL.String(), nil
}
