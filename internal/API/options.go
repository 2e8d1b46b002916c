package api

import "time"

// RequestOptions tweak a single logical call. The zero value is the default.
type RequestOptions struct {
	// Timeout bounds each physical attempt. Zero means the client default.
	Timeout time.Duration
	// SkipCache forces a network call even when a fresh cached response exists.
	SkipCache bool
	// Headers are merged over the client's defaults.
	Headers map[string]string
}

func (o *RequestOptions) timeoutOr(fallback time.Duration) time.Duration {
	if o != nil && o.Timeout > 0 {
		return o.Timeout
	}
	return fallback
}

func (o *RequestOptions) skipCache() bool {
	return o != nil && o.SkipCache
}

func (o *RequestOptions) headers() map[string]string {
	if o == nil {
		return nil
	}
	return o.Headers
}
