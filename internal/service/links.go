package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/behummble/link-alive/internal/checker"
	"github.com/behummble/link-alive/internal/models"
)

var (
	ErrDecodeBody = errors.New("DecodingDataError")
	ErrNoURLs     = errors.New("You need to provide at least one valid url!")
)

type LinkService struct {
	log     *zap.Logger
	checker Checker
	report  ReportRenderer
}

type Checker interface {
	Check(ctx context.Context, link models.ResolvedLink) models.LinkResult
}

type ReportRenderer interface {
	Render(batchID string, results []models.LinkResult) ([]byte, error)
}

func NewService(checker Checker, report ReportRenderer, log *zap.Logger) *LinkService {
	return &LinkService{
		log:     log,
		checker: checker,
		report:  report,
	}
}

// VerifyLinks checks every URL of the request body and returns the results in
// request order.
func (svc *LinkService) VerifyLinks(ctx context.Context, data []byte) (models.BatchResponse, error) {
	urls, err := svc.parseRequest(data)
	if err != nil {
		return models.BatchResponse{}, err
	}

	_, results := svc.checkAll(ctx, urls)
	return models.BatchResponse{Results: results}, nil
}

// LinksReport runs the same batch as VerifyLinks and renders it as a PDF.
func (svc *LinkService) LinksReport(ctx context.Context, data []byte) ([]byte, error) {
	urls, err := svc.parseRequest(data)
	if err != nil {
		return nil, err
	}

	batchID, results := svc.checkAll(ctx, urls)
	payload, err := svc.report.Render(batchID, results)
	if err != nil {
		svc.log.Error(
			"RenderingReportError",
			zap.String("component", "report"),
			zap.String("batch_id", batchID),
			zap.Error(err),
		)
		return nil, err
	}
	return payload, nil
}

func (svc *LinkService) parseRequest(data []byte) ([]string, error) {
	var linksRequest models.VerifyLinksRequest
	if err := json.Unmarshal(data, &linksRequest); err != nil {
		svc.log.Error(
			"ParsingJSONError",
			zap.String("component", "json/unmarshalling"),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %s", ErrDecodeBody, err.Error())
	}

	if len(linksRequest.URLs) == 0 {
		return nil, fmt.Errorf("%w Received %s", ErrNoURLs, data)
	}

	return linksRequest.URLs, nil
}

// checkAll starts one check per URL at once, with no upper bound on how many
// run together. The caller going away does not stop the batch; each check is
// bounded by its own timeout instead.
func (svc *LinkService) checkAll(ctx context.Context, urls []string) (string, []models.LinkResult) {
	batchID := uuid.NewString()
	ctx = context.WithoutCancel(ctx)

	svc.log.Info("Checking links", zap.String("batch_id", batchID), zap.Int("links", len(urls)))

	results := make([]models.LinkResult, len(urls))
	var group errgroup.Group
	for i, link := range urls {
		group.Go(func() error {
			results[i] = svc.checker.Check(ctx, checker.Resolve(models.LinkRequest{OriginalURL: link}))
			return nil
		})
	}
	_ = group.Wait()

	alive := 0
	for _, result := range results {
		if result.IsAlive {
			alive++
		}
	}
	svc.log.Info(
		"Links checked",
		zap.String("batch_id", batchID),
		zap.Int("links", len(results)),
		zap.Int("alive", alive),
	)

	return batchID, results
}
