package legacysource

import (
	"context"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
	"github.com/gaze-network/node-rewards/pkg/parquetutils"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const (
	snapshotPartPrefix      = "part-"
	snapshotDownloadWorkers = 4
)

// S3Client is the subset of *s3.Client used to read snapshots.
type S3Client interface {
	manager.DownloadAPIClient
	s3.ListObjectsV2APIClient
}

// snapshotRow is one owner of the legacy contract, as exported by the snapshot job.
type snapshotRow struct {
	Owner          string `parquet:"name=owner, type=BYTE_ARRAY, convertedtype=UTF8"`
	CreationTimes  string `parquet:"name=creation_times, type=BYTE_ARRAY, convertedtype=UTF8"`
	LastClaimTimes string `parquet:"name=last_claim_times, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// S3Snapshot reads records from parquet snapshot parts ("part-*" objects) under a prefix.
// The snapshot is loaded once, on first use.
type S3Snapshot struct {
	client S3Client
	bucket string
	prefix string

	mu      sync.Mutex
	records map[common.Address]Record
}

func NewS3Snapshot(client S3Client, bucket, prefix string) (*S3Snapshot, error) {
	if bucket == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "snapshot bucket is required")
	}
	return &S3Snapshot{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// NewS3SnapshotFromConfig creates a snapshot reader using the default aws credential chain.
func NewS3SnapshotFromConfig(ctx context.Context, region, bucket, prefix string) (*S3Snapshot, error) {
	sdkConfig, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "can't load aws user config")
	}
	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if region != "" {
			o.Region = region
		}
	})
	return NewS3Snapshot(client, bucket, prefix)
}

func (s *S3Snapshot) Record(ctx context.Context, owner common.Address) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.records == nil {
		records, err := s.load(ctx)
		if err != nil {
			return Record{}, errors.Wrap(err, "failed to load legacy snapshot")
		}
		s.records = records
	}
	return s.records[owner], nil
}

func (s *S3Snapshot) load(ctx context.Context) (map[common.Address]Record, error) {
	keys, err := s.listParts(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(keys) == 0 {
		return nil, errors.Wrapf(errs.NotFound, "no snapshot parts in s3://%s/%s", s.bucket, s.prefix)
	}

	parts := make([][]snapshotRow, len(keys))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(snapshotDownloadWorkers)
	for i, key := range keys {
		group.Go(func() error {
			data, err := s.download(groupCtx, key)
			if err != nil {
				return errors.WithStack(err)
			}
			rows, err := parquetutils.ReadBytes[snapshotRow](data)
			if err != nil {
				return errors.Wrapf(err, "can't decode snapshot part %q", key)
			}
			parts[i] = rows
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, errors.WithStack(err)
	}

	records := make(map[common.Address]Record)
	for _, rows := range parts {
		for _, row := range rows {
			if !common.IsHexAddress(row.Owner) {
				return nil, errors.Wrapf(errs.InvalidArgument, "invalid owner address %q in snapshot", row.Owner)
			}
			records[common.HexToAddress(row.Owner)] = Record{
				CreationTimes:  row.CreationTimes,
				LastClaimTimes: row.LastClaimTimes,
			}
		}
	}

	logger.InfoContext(ctx, "Loaded legacy snapshot",
		slogx.String("bucket", s.bucket),
		slogx.String("prefix", s.prefix),
		slogx.Int("parts", len(keys)),
		slogx.Int("owners", len(records)),
	)
	return records, nil
}

func (s *S3Snapshot) listParts(ctx context.Context) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "can't list s3 bucket objects for bucket %q and prefix %q", s.bucket, s.prefix)
		}
		objs := lo.Filter(page.Contents, func(item s3types.Object, _ int) bool {
			if item.Key == nil {
				return false
			}
			name := (*item.Key)[strings.LastIndex(*item.Key, "/")+1:]
			return strings.HasPrefix(name, snapshotPartPrefix)
		})
		keys = append(keys, lo.Map(objs, func(item s3types.Object, _ int) string { return *item.Key })...)
	}
	return keys, nil
}

func (s *S3Snapshot) download(ctx context.Context, key string) ([]byte, error) {
	downloader := manager.NewDownloader(s.client, func(d *manager.Downloader) {
		d.Concurrency = 4
		d.PartSize = 10 * 1024 * 1024
	})

	buffer := manager.NewWriteAtBuffer([]byte{})
	numBytes, err := downloader.Download(ctx, buffer, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to download file for bucket %q and key %q", s.bucket, key)
	}
	if numBytes < 1 {
		return nil, errors.Wrapf(errs.NotFound, "got empty file %q", key)
	}
	return buffer.Bytes(), nil
}
