package domain

// CarImage is an entry of the image picker: either a stock image shipped with
// the frontend or a file uploaded to disk storage.
type CarImage struct {
	Filename      string `json:"filename"`
	Path          string `json:"path"`
	IsPreExisting bool   `json:"isPreExisting"`
}

// UploadedImage is the result of a car image upload. Path is set for disk
// storage, Base64 holds a data URI when images are stored inline.
type UploadedImage struct {
	Filename    string `json:"filename"`
	Path        string `json:"path,omitempty"`
	Base64      string `json:"base64,omitempty"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// StockImages are the car pictures bundled with the frontend under /assets.
var StockImages = []string{
	"civic.jpg",
	"corolla.jpg",
	"golf.jpg",
	"hrv.jpg",
	"jeep_compass.jpg",
	"mustang.jpg",
	"ranger.jpg",
	"sw4.jpg",
}

// StockImagePath returns the public path of a bundled image.
func StockImagePath(filename string) string {
	return "/assets/" + filename
}

// IsStockImage reports whether filename names one of the bundled images.
func IsStockImage(filename string) bool {
	for _, name := range StockImages {
		if name == filename {
			return true
		}
	}
	return false
}
