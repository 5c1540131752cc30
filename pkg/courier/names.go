package courier

// ProviderName identifies one registered adapter.
type ProviderName = string

// Names of the built-in providers.
const (
	Dhd              ProviderName = "Dhd"
	Conexlog         ProviderName = "Conexlog"
	MsmGo            ProviderName = "MsmGo"
	RexLivraison     ProviderName = "RexLivraison"
	RbLivraison      ProviderName = "RbLivraison"
	SpeedDelivery    ProviderName = "SpeedDelivery"
	Areex            ProviderName = "Areex"
	Prest            ProviderName = "Prest"
	RocketDelivery   ProviderName = "RocketDelivery"
	Worldexpress     ProviderName = "Worldexpress"
	BaConsult        ProviderName = "BaConsult"
	Packers          ProviderName = "Packers"
	E48hrLivraison   ProviderName = "E48hrLivraison"
	MonoHub          ProviderName = "MonoHub"
	AndersonDelivery ProviderName = "AndersonDelivery"
	Golivri          ProviderName = "Golivri"
	CoyoteExpress    ProviderName = "CoyoteExpress"
	SalvaDelivery    ProviderName = "SalvaDelivery"
	Distazero        ProviderName = "Distazero"
	Fretdirect       ProviderName = "Fretdirect"
	TslExpress       ProviderName = "TslExpress"
	NegmarExpress    ProviderName = "NegmarExpress"

	Yalidine ProviderName = "Yalidine"
	Yalitec  ProviderName = "Yalitec"

	ZRExpress ProviderName = "ZRExpress"

	MaystroDelivery ProviderName = "MaystroDelivery"

	Mock ProviderName = "Mock"
)
