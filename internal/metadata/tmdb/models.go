package tmdb

import "github.com/moodk/moodk/internal/catalog"

// DiscoverResponse is a page of results from /discover or /trending.
type DiscoverResponse struct {
	Page         int          `json:"page"`
	Results      []ResultItem `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

// ResultItem is a film or series as listed by discovery endpoints.
// Films carry Title/ReleaseDate, series carry Name/FirstAirDate.
// MediaType is not part of the discover payload and is stamped after the fetch.
type ResultItem struct {
	ID           int               `json:"id"`
	Title        string            `json:"title,omitempty"`
	Name         string            `json:"name,omitempty"`
	PosterPath   string            `json:"poster_path"`
	BackdropPath string            `json:"backdrop_path"`
	Overview     string            `json:"overview"`
	VoteAverage  float64           `json:"vote_average"`
	VoteCount    int               `json:"vote_count,omitempty"`
	Popularity   float64           `json:"popularity,omitempty"`
	GenreIDs     []int             `json:"genre_ids"`
	ReleaseDate  string            `json:"release_date,omitempty"`
	FirstAirDate string            `json:"first_air_date,omitempty"`
	MediaType    catalog.MediaKind `json:"media_type,omitempty"`
}

// DisplayTitle returns the film title or, for series, the name.
func (r ResultItem) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// TitleDetails is the detail payload for a single film or series.
type TitleDetails struct {
	ID               int     `json:"id"`
	Title            string  `json:"title,omitempty"`
	Name             string  `json:"name,omitempty"`
	Overview         string  `json:"overview"`
	Tagline          string  `json:"tagline,omitempty"`
	Status           string  `json:"status,omitempty"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	FirstAirDate     string  `json:"first_air_date,omitempty"`
	Runtime          int     `json:"runtime,omitempty"`
	EpisodeRunTime   []int   `json:"episode_run_time,omitempty"`
	NumberOfSeasons  int     `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int     `json:"number_of_episodes,omitempty"`
	Genres           []Genre `json:"genres,omitempty"`
}

// Genre represents a genre from TMDB.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Video is an entry of /{kind}/{id}/videos.
type Video struct {
	ID       string `json:"id,omitempty"`
	Key      string `json:"key"`
	Name     string `json:"name,omitempty"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official,omitempty"`
}

// VideosResponse is the response from the videos endpoint.
type VideosResponse struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

// CastMember is a billed cast entry from the credits endpoint.
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character,omitempty"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

// CreditsResponse is the response from the credits endpoint.
type CreditsResponse struct {
	ID   int          `json:"id"`
	Cast []CastMember `json:"cast"`
}

// ErrorResponse is TMDB's error body.
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}
