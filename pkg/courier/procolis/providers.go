package procolis

import (
	"github.com/tournevent/courierdz/pkg/courier"
)

// ZRExpress describes the ZR Express courier.
var ZRExpress = courier.Metadata{
	Name:        courier.ZRExpress,
	Title:       "ZR Express",
	Logo:        "https://zrexpress.com/ZREXPRESS_WEB/ext/Logo.jpg",
	Description: "ZRexpress société de livraison en Algérie offre un service de livraison rapide et sécurisé .",
	Website:     "https://zrexpress.com",
	APIDocs:     "https://zrexpress.com/ZREXPRESS_WEB/FR/Developpement.awp",
	Support:     "https://www.facebook.com/ZRexpresslivraison/",
}

// Factory builds ZR Express clients from "token" and "key" credentials.
func Factory(creds courier.Credentials, deps courier.Deps) (courier.Provider, error) {
	if err := creds.Require(ZRExpress.Name, "token", "key"); err != nil {
		return nil, err
	}
	return New(Config{
		Token:    creds["token"],
		Key:      creds["key"],
		BaseURL:  DefaultBaseURL,
		Metadata: ZRExpress,
	}, deps), nil
}

// Register adds ZR Express to r.
func Register(r *courier.Registry) {
	r.Register(ZRExpress, Factory)
}
