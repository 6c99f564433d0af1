package verifs

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module("verifs", fx.Provide(
		NewItemVerifier,
		NewSlotVerifier,
		NewVendorVerifier,
		NewContainerVerifier,
		NewInsuranceVerifier,
		NewVerifiers,
	))
}
