package content

// Asset is one remote file of the bundled exercise content
type Asset struct {
	Name string // destination file name inside the content directory
	URL  string
}

// Bundled asset names
const (
	VideoName    = "add_sub.mp4"
	PosterName   = "add_sub.png"
	SubtitleName = "add_sub.srt"
)

// VideoMimeType is passed to the platform when opening the video
const VideoMimeType = "video/*"

// DefaultBundle returns the video, poster and subtitles of the addition and
// subtraction exercise.
func DefaultBundle() []Asset {
	return []Asset{
		{Name: VideoName, URL: "http://s3.amazonaws.com/KA-youtube-converted/AuX7nPBqDts.mp4/AuX7nPBqDts.mp4"},
		{Name: PosterName, URL: "http://s3.amazonaws.com/KA-youtube-converted/AuX7nPBqDts.mp4/AuX7nPBqDts.png"},
		{Name: SubtitleName, URL: "http://video.google.com/timedtext?lang=en&format=srt&v=AuX7nPBqDts"},
	}
}
