// Package services holds the application services of the admin client:
// authentication (sign-in, sign-up, federated sign-in, sign-out) and the
// admin panel operations.
package services

import (
	"context"

	"github.com/dmitrijs2005/savingsadmin/internal/client/client"
)

// API is the part of client.APIClient the services use.
type API interface {
	Do(ctx context.Context, path string, opts client.RequestOptions) client.Outcome
	Public(ctx context.Context, path string, opts client.RequestOptions) client.Outcome
}

// call performs an authenticated request and decodes a 2xx body into out
// (when out is non-nil). Non-2xx answers become *client.APIError.
func call(ctx context.Context, api API, path string, opts client.RequestOptions, out any) error {
	resp, err := api.Do(ctx, path, opts).Result()
	if err != nil {
		return err
	}
	if err := resp.Err(""); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.DecodeJSON(out)
}
