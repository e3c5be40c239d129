package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/klokku/meeting-fatigue/internal/utils"
	"github.com/klokku/meeting-fatigue/pkg/meeting"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	goauth2 "google.golang.org/api/oauth2/v2"
)

var ErrUnauthenticated = errors.New("access token is required")

// Client reads the user's identity and primary calendar with a caller supplied
// access token. It keeps no per-user state between calls.
type Client struct {
	clock   utils.Clock
	options []option.ClientOption
}

// NewClient creates a Client. Extra options are applied to every Google API
// service it builds, which is how tests point it at a fake server.
func NewClient(clock utils.Clock, opts ...option.ClientOption) *Client {
	return &Client{clock: clock, options: opts}
}

func (c *Client) GetUserInfo(ctx context.Context, token string) (meeting.UserInfo, error) {
	service, err := c.userinfoService(ctx, token)
	if err != nil {
		return meeting.UserInfo{}, err
	}

	info, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve user info from Google: %w", err)
		log.Error(err)
		return meeting.UserInfo{}, err
	}

	return meeting.UserInfo{
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}

func (c *Client) httpOptions(ctx context.Context, token string) ([]option.ClientOption, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	return append([]option.ClientOption{option.WithHTTPClient(httpClient)}, c.options...), nil
}

func (c *Client) userinfoService(ctx context.Context, token string) (*goauth2.Service, error) {
	opts, err := c.httpOptions(ctx, token)
	if err != nil {
		return nil, err
	}
	service, err := goauth2.NewService(ctx, opts...)
	if err != nil {
		err := fmt.Errorf("unable to create Google user info client: %w", err)
		log.Error(err)
		return nil, err
	}
	return service, nil
}

func (c *Client) calendarService(ctx context.Context, token string) (*gcal.Service, error) {
	opts, err := c.httpOptions(ctx, token)
	if err != nil {
		return nil, err
	}
	service, err := gcal.NewService(ctx, opts...)
	if err != nil {
		err := fmt.Errorf("unable to create Google Calendar client: %w", err)
		log.Error(err)
		return nil, err
	}
	return service, nil
}
