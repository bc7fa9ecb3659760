package domain

// UploadedImage describes an image stored on the media host.
type UploadedImage struct {
	PublicID  string `json:"publicId"`
	URL       string `json:"url"`
	SecureURL string `json:"secureUrl"`
	Format    string `json:"format"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Bytes     int    `json:"bytes"`
}

// MaxUploadBytes is the largest accepted image.
const MaxUploadBytes = 5 << 20

// MediaKind selects the folder an upload lands in.
type MediaKind string

const (
	MediaArticleImage MediaKind = "articles"
	MediaThumbnail    MediaKind = "thumbnails"
	MediaSetting      MediaKind = "settings"
)
