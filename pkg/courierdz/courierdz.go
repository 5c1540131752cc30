// Package courierdz is the entry point to the Algerian courier adapters.
// It resolves a provider by name and forwards every operation to it.
//
//	svc, err := courierdz.Provider(courier.Yalidine, courier.Credentials{"id": id, "token": token})
//	if err != nil {
//		return err
//	}
//	rates, err := svc.GetRates(ctx, 16, 31)
package courierdz

import (
	"sync"

	"github.com/tournevent/courierdz/pkg/courier"
)

var defaultRegistry = sync.OnceValue(func() *courier.Registry {
	return NewRegistry(courier.Deps{})
})

// DefaultRegistry returns the registry of every family with default
// dependencies.
func DefaultRegistry() *courier.Registry {
	return defaultRegistry()
}

// Provider resolves name in the default registry.
func Provider(name courier.ProviderName, creds courier.Credentials) (*Service, error) {
	return NewService(DefaultRegistry(), name, creds)
}

// Providers lists the metadata of every provider in the default registry.
func Providers() []courier.Metadata {
	return DefaultRegistry().Providers()
}
