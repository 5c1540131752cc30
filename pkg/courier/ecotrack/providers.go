package ecotrack

import (
	"github.com/tournevent/courierdz/pkg/courier"
)

const (
	trackingURL = "https://suivi.ecotrack.dz/suivi/"
	noLogo      = "#"
)

// Brand is one courier hosted on the Ecotrack platform.
type Brand struct {
	BaseURL  string
	Metadata courier.Metadata
}

func brand(name, title, host, logo string) Brand {
	site := "https://" + host + "/"
	return Brand{
		BaseURL: site,
		Metadata: courier.Metadata{
			Name:        name,
			Title:       title,
			Logo:        logo,
			Description: title + " est une entreprise algérienne opérant dans le secteur de livraison express",
			Website:     site,
			APIDocs:     site,
			Support:     site,
			TrackingURL: trackingURL,
		},
	}
}

var brands = []Brand{
	{
		BaseURL: "https://dhd.ecotrack.dz/",
		Metadata: courier.Metadata{
			Name:        courier.Dhd,
			Title:       "DHD",
			Logo:        "https://dhd-dz.com/assets/img/logo.png",
			Description: "DHD livraison est une entreprise algérienne opérant dans le secteur de livraison express",
			Website:     "https://dhd-dz.com/",
			APIDocs:     "https://dhd-dz.com/",
			Support:     "https://dhd-dz.com/#contact",
			TrackingURL: trackingURL,
		},
	},
	{
		BaseURL: "https://app.conexlog-dz.com/",
		Metadata: courier.Metadata{
			Name:        courier.Conexlog,
			Title:       "Conexlog",
			Logo:        "https://conexlog-dz.com/assets/img/logo.png",
			Description: "CONEXLOG est le prestataire exclusif des services agréés en Algérie pour le groupe UPS",
			Website:     "https://conexlog-dz.com/",
			APIDocs:     "https://conexlog-dz.com/",
			Support:     "https://conexlog-dz.com/contact.php",
			TrackingURL: "https://conexlog-dz.com/suivi.php",
		},
	},
	msmGo(),
	brand(courier.RexLivraison, "Rex Livraison", "rex.ecotrack.dz", "https://cdn1.ecotrack.dz/rex/images/login_logoCu3Rwdm.png"),
	brand(courier.RbLivraison, "RB Livraison", "rblivraison.ecotrack.dz", noLogo),
	brand(courier.SpeedDelivery, "Speed Delivery", "speeddelivery.ecotrack.dz", noLogo),
	brand(courier.Areex, "Areex", "areex.ecotrack.dz", noLogo),
	brand(courier.Prest, "Prest", "prest.ecotrack.dz", noLogo),
	brand(courier.RocketDelivery, "Rocket Delivery", "rocket.ecotrack.dz", "https://cdn1.ecotrack.dz/rocket/images/login_logogAux6nt.png"),
	brand(courier.Worldexpress, "WorldExpress", "worldexpress.ecotrack.dz", noLogo),
	brand(courier.BaConsult, "BA Consult", "bacexpress.ecotrack.dz", "https://cdn1.ecotrack.dz/bacexpress/images/login_logoeORMVno.png"),
	brand(courier.Packers, "Packers", "packers.ecotrack.dz", noLogo),
	brand(courier.E48hrLivraison, "48Hr Livraison", "48hr.ecotrack.dz", noLogo),
	brand(courier.MonoHub, "Mono Hub", "mono.ecotrack.dz", noLogo),
	brand(courier.AndersonDelivery, "Anderson Delivery", "anderson.ecotrack.dz", "https://cdn1.ecotrack.dz/anderson/images/login_logoctVbSeP.png"),
	brand(courier.Golivri, "GOLIVRI", "golivri.ecotrack.dz", "https://cdn1.ecotrack.dz/golivri/images/login_logoP2208XU.png"),
	brand(courier.CoyoteExpress, "Coyote express", "coyoteexpressdz.ecotrack.dz", noLogo),
	brand(courier.SalvaDelivery, "Salva Delivery", "salvadelivery.ecotrack.dz", "https://cdn1.ecotrack.dz/salvadelivery/images/login_logo6GOyzNz.png"),
	brand(courier.Distazero, "Distazero", "distazero.ecotrack.dz", "https://cdn1.ecotrack.dz/distazero/images/login_logooI8OebS.png"),
	brand(courier.Fretdirect, "FRET.Direct", "fret.ecotrack.dz", noLogo),
	brand(courier.TslExpress, "TSL Express", "tsl.ecotrack.dz", "https://cdn1.ecotrack.dz/tsl/images/login_logoxDIzsCJ.png"),
	brand(courier.NegmarExpress, "Negmar Express", "negmar.ecotrack.dz", noLogo),
}

// MSM Go is published without the trailing slash.
func msmGo() Brand {
	b := brand(courier.MsmGo, "MSM Go", "msmgo.ecotrack.dz", noLogo)
	b.BaseURL = "https://msmgo.ecotrack.dz"
	b.Metadata.Website = b.BaseURL
	b.Metadata.APIDocs = b.BaseURL
	b.Metadata.Support = b.BaseURL
	return b
}

// Brands returns every Ecotrack-hosted courier.
func Brands() []Brand {
	out := make([]Brand, len(brands))
	copy(out, brands)
	return out
}

// Factory returns the factory of one brand. It requires a "token"
// credential.
func Factory(b Brand) courier.Factory {
	return func(creds courier.Credentials, deps courier.Deps) (courier.Provider, error) {
		if err := creds.Require(b.Metadata.Name, "token"); err != nil {
			return nil, err
		}
		return New(Config{
			Token:    creds["token"],
			BaseURL:  b.BaseURL,
			Metadata: b.Metadata,
		}, deps), nil
	}
}

// Register adds every Ecotrack brand to r.
func Register(r *courier.Registry) {
	for _, b := range brands {
		r.Register(b.Metadata, Factory(b))
	}
}
