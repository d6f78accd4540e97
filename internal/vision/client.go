package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"
)

// minQualityScore is the lowest quality score (0-100) the service may report
// before an image is rejected as unsuitable for analysis.
const minQualityScore = 40

type ClientOpts struct {
	BaseURL string
}

// Client talks to a remote image preprocessing service over HTTP. The
// service owns the actual computer-vision work; this client only combines
// its verdicts.
type Client struct {
	httpClient *resty.Client
	baseURL    string
}

func NewClient(opts ClientOpts) *Client {
	c := Client{baseURL: opts.BaseURL}
	c.httpClient = resty.New().
		SetDebug(false).
		SetBaseURL(c.baseURL).
		SetHeader("Accept", "application/json")

	return &c
}

type imageRequest struct {
	Image string `json:"image"`
}

type qualityResponse struct {
	QualityScore    float64  `json:"quality_score"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

type detectionResponse struct {
	BoatDetected bool    `json:"boat_detected"`
	Confidence   float64 `json:"confidence"`
}

type preprocessResponse struct {
	Image               string   `json:"image"`
	ProcessingTimeMs    int64    `json:"processing_time_ms"`
	EnhancementsApplied []string `json:"enhancements_applied"`
}

func (c *Client) req(ctx context.Context, result any) *resty.Request {
	request := c.httpClient.
		NewRequest().
		SetContext(ctx)

	if result != nil {
		request.SetResult(result)
	}

	return request
}

// ValidateBoatImage runs the quality check and boat detection concurrently
// and combines them into a single verdict. A validation failure here is a
// verdict, not an error; errors mean the service itself could not be
// reached.
func (c *Client) ValidateBoatImage(ctx context.Context, imageData []byte) (*Validation, error) {
	body := imageRequest{Image: base64.StdEncoding.EncodeToString(imageData)}

	var quality qualityResponse
	var detection detectionResponse

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := handleError(c.req(ctx, &quality).
			SetBody(body).
			Post("/v1/quality"))
		return err
	})
	g.Go(func() error {
		_, err := handleError(c.req(ctx, &detection).
			SetBody(body).
			Post("/v1/detect"))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("image validation failed: %w", err)
	}

	v := &Validation{
		QualityScore:        quality.QualityScore,
		BoatDetected:        detection.BoatDetected,
		DetectionConfidence: detection.Confidence,
		Issues:              quality.Issues,
		Recommendations:     quality.Recommendations,
	}

	switch {
	case !detection.BoatDetected:
		v.RejectionReason = "No boat detected in the image"
	case quality.QualityScore < minQualityScore:
		v.RejectionReason = fmt.Sprintf("Image quality too low for analysis (score: %.0f)", quality.QualityScore)
		if len(v.Issues) > 0 {
			v.RejectionReason += ": " + strings.Join(v.Issues, ", ")
		}
	default:
		v.CanProceed = true
	}

	return v, nil
}

// Preprocess sends the image for enhancement and returns the processed
// bytes. A service failure returns the original image untouched so analysis
// can continue.
func (c *Client) Preprocess(ctx context.Context, imageData []byte) ([]byte, *Info, error) {
	var result preprocessResponse

	_, err := handleError(c.req(ctx, &result).
		SetBody(imageRequest{Image: base64.StdEncoding.EncodeToString(imageData)}).
		Post("/v1/preprocess"))
	if err != nil {
		return imageData, nil, fmt.Errorf("image preprocessing failed: %w", err)
	}

	processed, err := base64.StdEncoding.DecodeString(result.Image)
	if err != nil {
		return imageData, nil, fmt.Errorf("failed to decode processed image: %w", err)
	}

	info := &Info{
		ProcessingTimeMs:    result.ProcessingTimeMs,
		EnhancementsApplied: result.EnhancementsApplied,
	}
	return processed, info, nil
}

// handleError is a generic error handler for failing response (>399 status
// code). Without this, failing responses would have nil error.
func handleError(res *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		return res, err
	}
	if res.IsError() {
		return res, fmt.Errorf("request failed: %s %s (status: %d)", res.Request.Method, res.Request.URL, res.StatusCode())
	}

	return res, nil
}
