package textract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awstextract "github.com/aws/aws-sdk-go-v2/service/textract"
	txtypes "github.com/aws/aws-sdk-go-v2/service/textract/types"
)

// Client wraps the AWS Textract AnalyzeExpense API for documents already stored
// in S3. It converts SDK shapes into the package's own types so the parsing core
// never touches the SDK.
type Client struct {
	api    *awstextract.Client
	bucket string
	logger *slog.Logger
}

func NewClient(cfg aws.Config, bucket string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		api:    awstextract.NewFromConfig(cfg),
		bucket: bucket,
		logger: logger,
	}
}

// StartExpenseAnalysis submits an async expense-analysis job for the S3 object
// and returns the job ID. requestToken and jobTag are optional.
func (c *Client) StartExpenseAnalysis(ctx context.Context, s3Key, requestToken, jobTag string) (string, error) {
	in := &awstextract.StartExpenseAnalysisInput{
		DocumentLocation: &txtypes.DocumentLocation{
			S3Object: &txtypes.S3Object{
				Bucket: aws.String(c.bucket),
				Name:   aws.String(s3Key),
			},
		},
	}
	if requestToken != "" {
		in.ClientRequestToken = aws.String(requestToken)
	}
	if jobTag != "" {
		in.JobTag = aws.String(jobTag)
	}

	out, err := c.api.StartExpenseAnalysis(ctx, in)
	if err != nil {
		c.logger.Error("textract.start_failed", "s3_key", s3Key, "error", err)
		return "", fmt.Errorf("start expense analysis for %s: %w", s3Key, err)
	}
	jobID := aws.ToString(out.JobId)
	c.logger.Info("textract.started", "s3_key", s3Key, "job_id", jobID)
	return jobID, nil
}

// FetchResultsPage implements PageFetcher against the live API.
func (c *Client) FetchResultsPage(ctx context.Context, jobID, nextToken string) (ResultPage, error) {
	in := &awstextract.GetExpenseAnalysisInput{
		JobId:      aws.String(jobID),
		MaxResults: aws.Int32(100),
	}
	if nextToken != "" {
		in.NextToken = aws.String(nextToken)
	}

	out, err := c.api.GetExpenseAnalysis(ctx, in)
	if err != nil {
		return ResultPage{}, fmt.Errorf("get expense analysis for job %s: %w", jobID, err)
	}

	page := ResultPage{
		Status:       ParseJobStatus(string(out.JobStatus)),
		NextToken:    aws.ToString(out.NextToken),
		ModelVersion: aws.ToString(out.AnalyzeExpenseModelVersion),
	}
	if out.DocumentMetadata != nil {
		page.PageCount = aws.ToInt32(out.DocumentMetadata.Pages)
	}
	for _, doc := range out.ExpenseDocuments {
		page.Documents = append(page.Documents, fromSDKDocument(doc))
	}
	for _, w := range out.Warnings {
		page.Warnings = append(page.Warnings, Warning{
			ErrorCode: aws.ToString(w.ErrorCode),
			Pages:     w.Pages,
		})
	}
	return page, nil
}

func fromSDKDocument(doc txtypes.ExpenseDocument) ExpenseDocument {
	out := ExpenseDocument{}
	for _, f := range doc.SummaryFields {
		if fld, ok := fromSDKField(f); ok {
			out.SummaryFields = append(out.SummaryFields, fld)
		}
	}
	for _, g := range doc.LineItemGroups {
		group := LineItemGroup{Index: aws.ToInt32(g.LineItemGroupIndex)}
		for _, li := range g.LineItems {
			item := LineItem{}
			for _, f := range li.LineItemExpenseFields {
				if fld, ok := fromSDKField(f); ok {
					item.Fields = append(item.Fields, fld)
				}
			}
			group.Items = append(group.Items, item)
		}
		out.LineItemGroups = append(out.LineItemGroups, group)
	}
	return out
}

// fromSDKField keeps only fields with both a type label and a detected value;
// anything else carries no information the parser could use.
func fromSDKField(f txtypes.ExpenseField) (Field, bool) {
	var out Field
	if f.Type != nil {
		out.Type = aws.ToString(f.Type.Text)
	}
	if f.ValueDetection != nil {
		out.Value = aws.ToString(f.ValueDetection.Text)
		out.Confidence = aws.ToFloat32(f.ValueDetection.Confidence)
	}
	if out.Type == "" || out.Value == "" {
		return Field{}, false
	}
	return out, true
}
