package hotels

import "go.uber.org/fx"

// Module provides the hotel catalog dependencies
var Module = fx.Module("hotels",
	fx.Provide(
		NewCatalog,
		NewHandler,
	),
)
