package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Objeto is one stored object as seen by callers of the listing API.
type Objeto struct {
	Name    string     `json:"name"`
	URL     string     `json:"url"`
	Updated *time.Time `json:"updated,omitempty"`
}

type listResponse struct {
	Items []struct {
		Name      string     `json:"name"`
		MediaLink string     `json:"mediaLink"`
		Updated   *time.Time `json:"updated"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

// GCSBucket lists objects through the Cloud Storage JSON API. Read access
// comes from the bucket's IAM or an optional bearer token; this client does
// not sign URLs.
type GCSBucket struct {
	http   *resty.Client
	bucket string
	token  string
	logger *logrus.Logger
}

func NewGCSBucket(bucket, token string, logger *logrus.Logger) *GCSBucket {
	httpClient := resty.New().
		SetBaseURL("https://storage.googleapis.com/storage/v1").
		SetTimeout(20 * time.Second).
		SetHeader("Accept", "application/json")

	return &GCSBucket{
		http:   httpClient,
		bucket: bucket,
		token:  token,
		logger: logger,
	}
}

// SetBaseURL points the client at a different endpoint, for emulators.
func (b *GCSBucket) SetBaseURL(url string) {
	b.http.SetBaseURL(url)
}

func (b *GCSBucket) ListObjects(ctx context.Context, prefix string) ([]Objeto, error) {
	var objetos []Objeto
	pageToken := ""

	for {
		request := b.http.R().
			SetContext(ctx).
			SetQueryParam("prefix", prefix)
		if pageToken != "" {
			request.SetQueryParam("pageToken", pageToken)
		}
		if b.token != "" {
			request.SetAuthToken(b.token)
		}

		response, err := request.Get("/b/" + b.bucket + "/o")
		if err != nil {
			return nil, err
		}
		if response.IsError() {
			if b.logger != nil {
				b.logger.WithFields(logrus.Fields{
					"status": response.StatusCode(),
					"bucket": b.bucket,
				}).Warn("gcs list failed")
			}
			return nil, &ListError{Status: response.StatusCode()}
		}

		var parsed listResponse
		if err := json.Unmarshal(response.Body(), &parsed); err != nil {
			return nil, err
		}
		for _, item := range parsed.Items {
			objetos = append(objetos, Objeto{
				Name:    item.Name,
				URL:     item.MediaLink,
				Updated: item.Updated,
			})
		}

		if parsed.NextPageToken == "" {
			return objetos, nil
		}
		pageToken = parsed.NextPageToken
	}
}

type ListError struct {
	Status int
}

func (e *ListError) Error() string {
	return "object listing failed"
}
