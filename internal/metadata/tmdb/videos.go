package tmdb

const (
	siteYouTube      = "YouTube"
	videoTypeTrailer = "Trailer"
)

// SelectTrailer picks the YouTube trailer from a video list, falling back to
// any YouTube video. Returns nil when there is no YouTube video at all.
func SelectTrailer(videos []Video) *Video {
	for i := range videos {
		if videos[i].Site == siteYouTube && videos[i].Type == videoTypeTrailer {
			return &videos[i]
		}
	}
	for i := range videos {
		if videos[i].Site == siteYouTube {
			return &videos[i]
		}
	}
	return nil
}
