package soap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"payline-connector/internal/core/domain"
	"payline-connector/pkg/apperror"
)

const contentTypeXML = "text/xml; charset=utf-8"

// Client calls the operations of one service definition over HTTP.
type Client struct {
	group    domain.OperationGroup
	endpoint string
	def      *Definition
	objectNS string
	http     *resty.Client
	log      zerolog.Logger
}

// Group returns the operation group the client was built for.
func (c *Client) Group() domain.OperationGroup { return c.group }

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// Supports reports whether the service definition declares action.
func (c *Client) Supports(action string) bool {
	return c.def.HasOperation(action)
}

// Call posts an envelope for action and decodes the response body.
func (c *Client) Call(ctx context.Context, action string, args domain.Fields) (domain.Response, error) {
	body, err := EncodeRequest(action, c.def.TargetNamespace, c.objectNS, args)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	c.log.Debug().
		Str("action", action).
		Str("endpoint", c.endpoint).
		Str("request", Redact(body)).
		Msg("soap request")

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentTypeXML).
		SetHeader("SOAPAction", c.def.SOAPAction(action)).
		SetBody(body).
		Post(c.endpoint)
	if err != nil {
		return nil, apperror.ErrTransport(fmt.Errorf("%s %s: %w", c.group, action, err))
	}

	c.log.Debug().
		Str("action", action).
		Int("status", resp.StatusCode()).
		Str("response", Redact(resp.Body())).
		Msg("soap response")

	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, apperror.ErrInvalidCredentials(fmt.Errorf("%s %s: http %d", c.group, action, resp.StatusCode()))
	}

	out, err := DecodeResponse(resp.Body())
	if err != nil {
		var fault *Fault
		if errors.As(err, &fault) {
			return nil, apperror.ErrTransport(fmt.Errorf("%s %s: %w", c.group, action, fault))
		}
		if resp.IsError() {
			return nil, apperror.ErrTransport(fmt.Errorf("%s %s: http %d", c.group, action, resp.StatusCode()))
		}
		return nil, apperror.ErrTransport(fmt.Errorf("%s %s: %w", c.group, action, err))
	}
	if resp.IsError() {
		return nil, apperror.ErrTransport(fmt.Errorf("%s %s: http %d", c.group, action, resp.StatusCode()))
	}

	return out, nil
}
