package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/internal/repository"
	"github.com/kingrain94/tenant-items-api/internal/service/queue"
	"github.com/kingrain94/tenant-items-api/pkg/logger"
)

// MessageQueue is the consuming side of the export queue.
type MessageQueue interface {
	ReceiveMessages(ctx context.Context, queueURL string, maxMessages int32, waitTimeSeconds int32) ([]queue.ReceivedMessage, error)
	DeleteMessage(ctx context.Context, queueURL string, receiptHandle *string) error
}

// ObjectUploader is the subset of the S3 API the worker uses.
type ObjectUploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Snapshot is the document uploaded for every export.
type Snapshot struct {
	ExportID    string        `json:"export_id"`
	Schema      string        `json:"schema"`
	RequestedBy int64         `json:"requested_by"`
	ExportedAt  time.Time     `json:"exported_at"`
	ItemCount   int           `json:"item_count"`
	Items       []domain.Item `json:"items"`
}

type ExportWorker struct {
	queue        MessageQueue
	queueURL     string
	repository   repository.Repository
	uploader     ObjectUploader
	bucket       string
	logger       *logger.Logger
	workerCount  int
	pollInterval time.Duration
	maxMessages  int32
	waitTime     int32
	now          func() time.Time
	ctx          context.Context
	cancel       context.CancelFunc
	waitGroup    sync.WaitGroup
}

func NewExportWorker(
	messageQueue MessageQueue,
	queueURL string,
	repository repository.Repository,
	uploader ObjectUploader,
	bucket string,
	logger *logger.Logger,
	workerCount int,
	pollInterval time.Duration,
) *ExportWorker {
	ctx, cancel := context.WithCancel(context.Background())
	return &ExportWorker{
		queue:        messageQueue,
		queueURL:     queueURL,
		repository:   repository,
		uploader:     uploader,
		bucket:       bucket,
		logger:       logger,
		workerCount:  workerCount,
		pollInterval: pollInterval,
		maxMessages:  10,
		waitTime:     20,
		now:          time.Now,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (w *ExportWorker) Start() {
	w.logger.Info("Starting export workers...", zap.Int("count", w.workerCount))

	for i := 0; i < w.workerCount; i++ {
		w.waitGroup.Add(1)
		go w.runWorker(i)
	}
}

// Stop cancels in-flight polls and waits for every worker to return.
func (w *ExportWorker) Stop() {
	w.logger.Info("Stopping export workers...")
	w.cancel()
	w.waitGroup.Wait()
	w.logger.Info("All export workers stopped")
}

func (w *ExportWorker) runWorker(workerID int) {
	defer w.waitGroup.Done()

	w.logger.Infof("Export worker %d started", workerID)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Infof("Export worker %d shutting down", workerID)
			return
		case <-ticker.C:
			if err := w.ProcessMessages(w.ctx); err != nil && w.ctx.Err() == nil {
				w.logger.Error("Export worker failed to process messages", err, zap.Int("worker", workerID))
			}
		}
	}
}

// ProcessMessages handles one batch. A message is deleted only after its
// snapshot was uploaded, so failed exports are redelivered.
func (w *ExportWorker) ProcessMessages(ctx context.Context) error {
	messages, err := w.queue.ReceiveMessages(ctx, w.queueURL, w.maxMessages, w.waitTime)
	if err != nil {
		return fmt.Errorf("failed to receive messages: %w", err)
	}

	for _, msg := range messages {
		if msg.Message.Type != queue.MessageTypeExport {
			w.logger.Warn("Skipping unknown message type", zap.String("type", string(msg.Message.Type)))
			continue
		}

		log := w.logger.ForTenant(msg.Message.Schema).With(zap.String("export_id", msg.Message.ExportID))
		if err := w.export(ctx, msg.Message); err != nil {
			log.Error("Failed to export items", err)
			continue
		}

		if err := w.queue.DeleteMessage(ctx, w.queueURL, msg.ReceiptHandle); err != nil {
			log.Error("Failed to delete message", err)
		}
	}

	return nil
}

func (w *ExportWorker) export(ctx context.Context, msg queue.Message) error {
	var items []domain.Item
	err := w.repository.WithTenantScope(repository.ReadOnly(ctx), msg.Schema, func(ctx context.Context) error {
		var err error
		items, err = w.repository.Item().List(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to list items of %s: %w", msg.Schema, err)
	}

	exportedAt := w.now().UTC()
	snapshot := Snapshot{
		ExportID:    msg.ExportID,
		Schema:      msg.Schema,
		RequestedBy: msg.RequestedBy,
		ExportedAt:  exportedAt,
		ItemCount:   len(items),
		Items:       items,
	}

	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := SnapshotKey(msg.Schema, msg.ExportID, exportedAt)
	_, err = w.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"schema":       msg.Schema,
			"export-id":    msg.ExportID,
			"item-count":   strconv.Itoa(len(items)),
			"requested-by": strconv.FormatInt(msg.RequestedBy, 10),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot to S3: %w", err)
	}

	w.logger.Info("Uploaded item snapshot",
		zap.String("schema", msg.Schema), zap.String("key", key), zap.Int("items", len(items)))
	return nil
}

// SnapshotKey is the object key of an export: item-exports/<schema>/<timestamp>_<export id>.json
func SnapshotKey(schema, exportID string, at time.Time) string {
	return fmt.Sprintf("item-exports/%s/%s_%s.json", schema, at.Format("2006-01-02_15-04-05"), exportID)
}
