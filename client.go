// Package kling is a client for the Kling AI generative-media API.
//
// Every generation capability submits an asynchronous task and exposes the
// same lifecycle: Create, Get, List and WaitForCompletion. TTS is the one
// synchronous exception.
//
//	client, err := kling.NewClient(accessKey, secretKey)
//	if err != nil { ... }
//	defer client.Close()
//
//	t, err := client.TextToVideo.Create(ctx, &kling.TextToVideoRequest{Prompt: "a cat surfing"})
//	if err != nil { ... }
//	done, err := client.TextToVideo.WaitForCompletion(ctx, t.ID)
//
// All methods block the calling goroutine. Use Async and WaitAll to fan out
// many submissions or waits at once.
package kling

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/maauso/kling-go/internal/auth"
	"github.com/maauso/kling-go/internal/download"
	"github.com/maauso/kling-go/internal/poll"
	"github.com/maauso/kling-go/internal/transport"
)

// DefaultBaseURL is the public API endpoint.
const DefaultBaseURL = transport.DefaultBaseURL

// DefaultRequestTimeout bounds a single API round trip.
const DefaultRequestTimeout = 30 * time.Second

// Static errors for client construction.
var (
	// ErrAccessKeyNotSet is returned when no access key is passed and KLING_ACCESS_KEY is empty.
	ErrAccessKeyNotSet = errors.New("kling: access key is required (KLING_ACCESS_KEY)")
	// ErrSecretKeyNotSet is returned when no secret key is passed and KLING_SECRET_KEY is empty.
	ErrSecretKeyNotSet = errors.New("kling: secret key is required (KLING_SECRET_KEY)")
)

// Client aggregates every API capability behind one set of credentials and
// one pooled HTTP connection. It is safe for concurrent use.
type Client struct {
	TextToVideo    *TextToVideoService
	ImageToVideo   *ImageToVideoService
	VideoExtension *VideoExtensionService
	Avatar         *AvatarService
	LipSync        *LipSyncService
	Effects        *EffectsService
	TextToAudio    *TextToAudioService
	VideoToAudio   *VideoToAudioService
	TTS            *TTSService

	transport  *transport.Client
	downloader *download.Downloader
}

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
	clock      poll.Clock
}

// ClientOption is a function that configures a Client.
type ClientOption func(*clientOptions)

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(u string) ClientOption {
	return func(o *clientOptions) {
		o.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client. Its connection pool stays owned by
// the caller and is left alone by Close.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// WithRequestTimeout sets the per-request timeout of the default HTTP client.
// Non-positive values are ignored, and so is the option when combined with
// WithHTTPClient.
func WithRequestTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets the logger for request and polling diagnostics.
func WithLogger(l *slog.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = l
	}
}

// NewClient creates a Client. Empty keys fall back to the KLING_ACCESS_KEY and
// KLING_SECRET_KEY environment variables.
func NewClient(accessKey, secretKey string, opts ...ClientOption) (*Client, error) {
	if accessKey == "" {
		accessKey = os.Getenv("KLING_ACCESS_KEY")
	}
	if secretKey == "" {
		secretKey = os.Getenv("KLING_SECRET_KEY")
	}
	if accessKey == "" {
		return nil, ErrAccessKeyNotSet
	}
	if secretKey == "" {
		return nil, ErrSecretKeyNotSet
	}

	o := &clientOptions{
		timeout: DefaultRequestTimeout,
		logger:  slog.New(slog.DiscardHandler),
		clock:   poll.RealClock,
	}
	for _, opt := range opts {
		opt(o)
	}

	signer, err := auth.NewSigner(accessKey, secretKey)
	if err != nil {
		return nil, err
	}

	transportOpts := []transport.ClientOption{
		transport.WithTimeout(o.timeout),
		transport.WithLogger(o.logger),
	}
	if o.baseURL != "" {
		transportOpts = append(transportOpts, transport.WithBaseURL(o.baseURL))
	}
	if o.httpClient != nil {
		transportOpts = append(transportOpts, transport.WithHTTPClient(o.httpClient))
	}
	tc, err := transport.New(signer, transportOpts...)
	if err != nil {
		return nil, err
	}

	// Downloads share the pooled connections but not the request timeout,
	// since large artifacts can take longer than one API round trip.
	dlClient := &http.Client{Transport: tc.HTTPClient().Transport}

	c := &Client{
		transport:  tc,
		downloader: download.New(dlClient),
	}

	ep := func(path string) endpoint {
		return endpoint{path: path, doer: tc, logger: o.logger, clock: o.clock}
	}
	c.TextToVideo = &TextToVideoService{TaskAPI{ep(pathTextToVideo)}}
	c.ImageToVideo = &ImageToVideoService{
		TaskAPI: TaskAPI{ep(pathImageToVideo)},
		Multi:   TaskAPI{ep(pathMultiImageToVideo)},
	}
	c.VideoExtension = &VideoExtensionService{TaskAPI{ep(pathVideoExtension)}}
	c.Avatar = &AvatarService{TaskAPI{ep(pathAvatar)}}
	c.LipSync = &LipSyncService{TaskAPI: TaskAPI{ep(pathLipSync)}, faces: ep(pathIdentifyFace)}
	c.Effects = &EffectsService{TaskAPI{ep(pathEffects)}}
	c.TextToAudio = &TextToAudioService{TaskAPI{ep(pathTextToAudio)}}
	c.VideoToAudio = &VideoToAudioService{TaskAPI{ep(pathVideoToAudio)}}
	c.TTS = &TTSService{ep(pathTTS)}

	return c, nil
}

// BaseURL returns the API base URL in use.
func (c *Client) BaseURL() string {
	return c.transport.BaseURL()
}

// Download streams a result artifact URL into w and returns the byte count.
// Failures are *DownloadError, never *APIError.
func (c *Client) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	if c.transport.Closed() {
		return 0, ErrClosed
	}
	return c.downloader.Download(ctx, url, w)
}

// Close releases pooled connections. It is safe to call more than once; every
// call made afterwards fails with ErrClosed.
func (c *Client) Close() error {
	return c.transport.Close()
}
