package provider

import "context"

// Initializable is implemented by providers that need setup before use,
// such as validating credentials. Manager.InitializeWithContext calls Init.
type Initializable interface {
	Init(ctx context.Context) error
}

// Closeable is implemented by providers that hold resources.
// Manager.Close calls it on shutdown.
type Closeable interface {
	Close(ctx context.Context) error
}
