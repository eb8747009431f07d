package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// Service is a client of the chat platform push gateway
type Service struct {
	apiURL     string
	httpClient *http.Client
	logger     zerolog.Logger
	breaker    *gobreaker.CircuitBreaker
	settings   gobreaker.Settings
}

func (s *Service) LoggerComponent() string {
	return "Push.Service"
}

func NewService(apiURL string, opts ...ServiceOption) (*Service, error) {
	if apiURL == "" {
		return nil, fmt.Errorf("empty push gateway url")
	}

	c := &Service{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     log.Logger,
		settings: gobreaker.Settings{
			Name:        "push-gateway",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		},
	}

	for _, o := range opts {
		o(c)
	}

	c.logger = c.logger.With().Str("component", c.LoggerComponent()).Logger()

	l := c.logger
	c.settings.OnStateChange = func(name string, from, to gobreaker.State) {
		l.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
	}
	c.breaker = gobreaker.NewCircuitBreaker(c.settings)

	return c, nil
}

type ServiceOption func(*Service)

func WithLogger(l zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

func WithHTTPClient(c *http.Client) ServiceOption {
	return func(s *Service) {
		s.httpClient = c
	}
}

// WithBreaker sets how many consecutive failures open the circuit and for how long it stays open
func WithBreaker(failures uint32, openFor time.Duration) ServiceOption {
	return func(s *Service) {
		s.settings.Timeout = openFor
		s.settings.ReadyToTrip = func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		}
	}
}

func (s *Service) Send(ctx context.Context, in *SendRequest, out *SendResponse) error {
	l := s.logger.With().
		Str("method", "Send").
		Str("event_id", in.EventID).
		Str("type", in.Type).
		Logger()
	ctx = l.WithContext(ctx)

	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.genericCall(ctx, http.MethodPost, "/api/push", in, out)
	})
	if err != nil {
		return err
	}

	l.Debug().
		Str("message_id", out.MessageID).
		Msg("Send success")

	return nil
}

type RemoteError struct {
	ResponseBody string
	StatusCode   int
}

func NewRemoteError(responseBody string, statusCode int) *RemoteError {
	return &RemoteError{ResponseBody: responseBody, StatusCode: statusCode}
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("push gateway responded %d: %s", e.StatusCode, e.ResponseBody)
}

func (s *Service) genericCall(ctx context.Context, method, endpoint string, in interface{}, out interface{}) error {
	l := zerolog.Ctx(ctx).With().Str("http_method", method).Str("endpoint", endpoint).Logger()
	ctx = l.WithContext(ctx)

	res, err := s.request(ctx, method, endpoint, in)
	if err != nil {
		l.Error().Err(err).
			Msg("Service request failed")
		return fmt.Errorf("request: %w", err)
	}

	if res.StatusCode >= 400 {
		resBody := readString(res.Body)
		l.Error().
			Int("http_status", res.StatusCode).
			Str("http_body", resBody).
			Msg("Service responded with error")
		return NewRemoteError(resBody, res.StatusCode)
	}

	if err := readJSON(res.Body, out); err != nil {
		return fmt.Errorf("body read: %w", err)
	}

	return nil
}

func (s *Service) request(
	ctx context.Context,
	method string,
	endpoint string,
	bodyParams interface{},
) (*http.Response, error) {
	fullURL := s.apiURL + endpoint
	l := zerolog.Ctx(ctx).With().
		Str("url", fullURL).
		Logger()
	l.Debug().Msg("HTTP request")

	rawJSON, err := json.Marshal(bodyParams)
	if err != nil {
		return nil, fmt.Errorf("json encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bytes.NewReader(rawJSON))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	l.Debug().Str("request_body", string(rawJSON)).Msg("Doing request")

	res, err := s.httpClient.Do(req)
	if err != nil {
		l.Error().Err(err).
			Msg("Call failed")
		return nil, fmt.Errorf("do request: %w", err)
	}

	return res, nil
}
