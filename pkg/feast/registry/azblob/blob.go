package azblob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/streaming"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
)

var errBlobNotFound = errors.New("blob not found")
var errConditionNotMet = errors.New("blob condition not met")

// condition restricts a write to a state of the blob.
type condition struct {
	ifMatch     *azcore.ETag
	ifNotExists bool
}

// blobAPI is the part of the blob service used by Store.
type blobAPI interface {
	download(ctx context.Context) ([]byte, azcore.ETag, error)
	upload(ctx context.Context, body []byte, cond condition) (azcore.ETag, error)
	remove(ctx context.Context) error
}

type sdkBlob struct {
	client *blockblob.Client
}

func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound):
		return fmt.Errorf("%w: %w", errBlobNotFound, err)
	case bloberror.HasCode(err, bloberror.ConditionNotMet, bloberror.BlobAlreadyExists):
		return fmt.Errorf("%w: %w", errConditionNotMet, err)
	}
	return err
}

func (b sdkBlob) download(ctx context.Context) ([]byte, azcore.ETag, error) {
	resp, err := b.client.DownloadStream(ctx, nil)
	if err != nil {
		return nil, "", classify(err)
	}
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	etag := azcore.ETag("")
	if resp.ETag != nil {
		etag = *resp.ETag
	}
	return buf, etag, nil
}

func (b sdkBlob) upload(ctx context.Context, body []byte, cond condition) (azcore.ETag, error) {
	opts := &blockblob.UploadOptions{}
	switch {
	case cond.ifMatch != nil:
		opts.AccessConditions = &blob.AccessConditions{
			ModifiedAccessConditions: &blob.ModifiedAccessConditions{IfMatch: cond.ifMatch},
		}
	case cond.ifNotExists:
		anyTag := azcore.ETagAny
		opts.AccessConditions = &blob.AccessConditions{
			ModifiedAccessConditions: &blob.ModifiedAccessConditions{IfNoneMatch: &anyTag},
		}
	}

	resp, err := b.client.Upload(ctx, streaming.NopCloser(bytes.NewReader(body)), opts)
	if err != nil {
		return "", classify(err)
	}
	if resp.ETag == nil {
		return "", nil
	}
	return *resp.ETag, nil
}

func (b sdkBlob) remove(ctx context.Context) error {
	_, err := b.client.Delete(ctx, nil)
	return classify(err)
}
