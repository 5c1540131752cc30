package yalidine

import (
	"github.com/tournevent/courierdz/pkg/courier"
)

// Brand is one courier running the Yalidine API.
type Brand struct {
	BaseURL  string
	Metadata courier.Metadata
}

var brands = []Brand{
	{
		BaseURL: "https://api.yalidine.app",
		Metadata: courier.Metadata{
			Name:        courier.Yalidine,
			Title:       "Yalidine",
			Logo:        "https://yalidine.com/assets/img/yalidine-logo.png",
			Description: "Yalidine société de livraison en Algérie offre un service de livraison rapide et sécurisé .",
			Website:     "https://yalidine.com/",
			APIDocs:     "https://yalidine.app/app/dev/docs/api/index.php",
			Support:     "https://yalidine.com/#contact",
			TrackingURL: "https://yalidine.com/suivre-un-colis/",
		},
	},
	{
		BaseURL: "https://api.yalitec.me",
		Metadata: courier.Metadata{
			Name:        courier.Yalitec,
			Title:       "Yalitec",
			Logo:        "https://www.yalitec.com/_next/image?url=%2Fimages%2Flogo.png&w=384&q=75",
			Description: "Yalitec société de livraison en Algérie offre un service de livraison rapide et sécurisé .",
			Website:     "https://www.yalitec.com/fr",
			APIDocs:     "https://yalitec.me/app/dev/docs/api/index.php",
			Support:     "https://www.yalitec.com/fr#contact",
		},
	},
}

// Brands returns every courier running the Yalidine API.
func Brands() []Brand {
	out := make([]Brand, len(brands))
	copy(out, brands)
	return out
}

// Factory returns the factory of one brand. It requires "id" and "token"
// credentials.
func Factory(b Brand) courier.Factory {
	return func(creds courier.Credentials, deps courier.Deps) (courier.Provider, error) {
		if err := creds.Require(b.Metadata.Name, "id", "token"); err != nil {
			return nil, err
		}
		return New(Config{
			ID:       creds["id"],
			Token:    creds["token"],
			BaseURL:  b.BaseURL,
			Metadata: b.Metadata,
		}, deps), nil
	}
}

// Register adds every Yalidine brand to r.
func Register(r *courier.Registry) {
	for _, b := range brands {
		r.Register(b.Metadata, Factory(b))
	}
}
