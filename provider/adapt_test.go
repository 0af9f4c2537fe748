package provider

import (
	"context"
	"errors"
	"testing"
)

type backendInput struct{ Raw string }

type backendOutput struct{ Data string }

type domainInput struct{ Query string }

type domainOutput struct{ Result string }

type stubBackend struct {
	available bool
	calls     int
	execFn    func(ctx context.Context, in backendInput) (backendOutput, error)
}

func (s *stubBackend) Name() string                       { return "backend" }
func (s *stubBackend) IsAvailable(_ context.Context) bool { return s.available }
func (s *stubBackend) Execute(ctx context.Context, in backendInput) (backendOutput, error) {
	s.calls++
	return s.execFn(ctx, in)
}

func adaptStub(b *stubBackend, inErr, outErr error) RequestResponse[domainInput, domainOutput] {
	return Adapt[domainInput, domainOutput, backendInput, backendOutput](
		b,
		"domain",
		func(_ context.Context, in domainInput) (backendInput, error) {
			return backendInput{Raw: in.Query}, inErr
		},
		func(out backendOutput) (domainOutput, error) {
			return domainOutput{Result: out.Data}, outErr
		},
	)
}

func TestAdapt_BasicMapping(t *testing.T) {
	b := &stubBackend{available: true, execFn: func(_ context.Context, in backendInput) (backendOutput, error) {
		return backendOutput{Data: "result:" + in.Raw}, nil
	}}
	adapted := adaptStub(b, nil, nil)

	if adapted.Name() != "domain" {
		t.Fatalf("expected name 'domain', got %q", adapted.Name())
	}
	if !adapted.IsAvailable(context.Background()) {
		t.Fatal("expected availability to delegate")
	}
	result, err := adapted.Execute(context.Background(), domainInput{Query: "hello"})
	if err != nil || result.Result != "result:hello" {
		t.Fatalf("expected result:hello, got %q, %v", result.Result, err)
	}
}

func TestAdapt_Errors(t *testing.T) {
	mapInErr := errors.New("bad input")
	mapOutErr := errors.New("bad output")
	backendErr := errors.New("backend failed")

	tests := []struct {
		name      string
		inErr     error
		outErr    error
		execErr   error
		want      error
		wantCalls int
	}{
		{"map in", mapInErr, nil, nil, mapInErr, 0},
		{"map out", nil, mapOutErr, nil, mapOutErr, 1},
		{"backend", nil, nil, backendErr, backendErr, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := &stubBackend{available: true, execFn: func(_ context.Context, in backendInput) (backendOutput, error) {
				return backendOutput{Data: in.Raw}, tc.execErr
			}}
			_, err := adaptStub(b, tc.inErr, tc.outErr).Execute(context.Background(), domainInput{Query: "x"})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if b.calls != tc.wantCalls {
				t.Errorf("expected %d backend calls, got %d", tc.wantCalls, b.calls)
			}
		})
	}
}
