package httpclient

import "github.com/kbukum/micscribe/provider"

var _ provider.RequestResponse[Request, *Response] = (*Adapter)(nil)
var _ provider.Closeable = (*Adapter)(nil)
