package tmdb

import "encoding/json"

// Page is one page of a paged result. The paging fields are passed through
// from the service unchanged.
type Page[T any] struct {
	Results    []T `json:"results" yaml:"results"`
	PageIndex  int `json:"page" yaml:"page"`
	PageCount  int `json:"total_pages" yaml:"total_pages"`
	TotalCount int `json:"total_results" yaml:"total_results"`
}

func (p *Page[T]) bindResolver(rs *Resolver) {
	for i := range p.Results {
		rs.bind(&p.Results[i])
	}
}

// Movie is a film. Fields filled through append_to_response are nil
// unless requested.
type Movie struct {
	ID                int                `json:"id"`
	Title             string             `json:"title"`
	OriginalTitle     string             `json:"original_title,omitempty"`
	OriginalLanguage  string             `json:"original_language,omitempty"`
	TagLine           string             `json:"tagline,omitempty"`
	Overview          string             `json:"overview,omitempty"`
	Poster            string             `json:"poster_path,omitempty"`
	Backdrop          string             `json:"backdrop_path,omitempty"`
	Adult             bool               `json:"adult"`
	BelongsTo         *Collection        `json:"belongs_to_collection,omitempty"`
	Budget            int64              `json:"budget,omitempty"`
	Genres            []Genre            `json:"genres,omitempty"`
	GenreIDs          []int              `json:"genre_ids,omitempty"`
	HomePage          string             `json:"homepage,omitempty"`
	Imdb              string             `json:"imdb_id,omitempty"`
	Companies         []Company          `json:"production_companies,omitempty"`
	Countries         []Country          `json:"production_countries,omitempty"`
	ReleaseDate       Date               `json:"release_date"`
	Revenue           int64              `json:"revenue,omitempty"`
	Runtime           int                `json:"runtime,omitempty"`
	Languages         []Language         `json:"spoken_languages,omitempty"`
	AlternativeTitles *AlternativeTitles `json:"alternative_titles,omitempty"`
	Credits           *MediaCredits      `json:"credits,omitempty"`
	Images            *Images            `json:"images,omitempty"`
	Videos            *Videos            `json:"videos,omitempty"`
	Keywords          *Keywords          `json:"keywords,omitempty"`
	Releases          *Releases          `json:"releases,omitempty"`
	Translations      *Translations      `json:"translations,omitempty"`
	Reviews           *Page[Review]      `json:"reviews,omitempty"`
	ExternalIDs       *ExternalIDs       `json:"external_ids,omitempty"`
	Popularity        float64            `json:"popularity"`
	VoteAverage       float64            `json:"vote_average"`
	VoteCount         int                `json:"vote_count"`
	Status            string             `json:"status,omitempty"`
	Rating            float64            `json:"rating,omitempty"`
}

// Show is a TV series.
type Show struct {
	ID               int           `json:"id"`
	Name             string        `json:"name"`
	OriginalName     string        `json:"original_name,omitempty"`
	OriginalLanguage string        `json:"original_language,omitempty"`
	Overview         string        `json:"overview,omitempty"`
	Poster           string        `json:"poster_path,omitempty"`
	Backdrop         string        `json:"backdrop_path,omitempty"`
	OriginCountries  []string      `json:"origin_country,omitempty"`
	EpisodeRuntimes  []int         `json:"episode_run_time,omitempty"`
	CreatedBy        []Person      `json:"created_by,omitempty"`
	FirstAirDate     Date          `json:"first_air_date"`
	LastAirDate      Date          `json:"last_air_date"`
	Genres           []Genre       `json:"genres,omitempty"`
	GenreIDs         []int         `json:"genre_ids,omitempty"`
	HomePage         string        `json:"homepage,omitempty"`
	InProduction     bool          `json:"in_production"`
	EpisodeCount     int           `json:"number_of_episodes,omitempty"`
	SeasonCount      int           `json:"number_of_seasons,omitempty"`
	Seasons          []Season      `json:"seasons,omitempty"`
	Languages        []string      `json:"languages,omitempty"`
	Networks         []Network     `json:"networks,omitempty"`
	Credits          *MediaCredits `json:"credits,omitempty"`
	Images           *Images       `json:"images,omitempty"`
	Videos           *Videos       `json:"videos,omitempty"`
	Keywords         *ShowKeywords `json:"keywords,omitempty"`
	Translations     *Translations `json:"translations,omitempty"`
	ExternalIDs      *ExternalIDs  `json:"external_ids,omitempty"`
	Popularity       float64       `json:"popularity"`
	VoteAverage      float64       `json:"vote_average"`
	VoteCount        int           `json:"vote_count"`
	Status           string        `json:"status,omitempty"`
	Rating           float64       `json:"rating,omitempty"`
}

// Season is one season of a show.
type Season struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Overview     string        `json:"overview,omitempty"`
	AirDate      Date          `json:"air_date"`
	Poster       string        `json:"poster_path,omitempty"`
	SeasonNumber int           `json:"season_number"`
	EpisodeCount int           `json:"episode_count,omitempty"`
	ShowID       int           `json:"show_id,omitempty"`
	Credits      *MediaCredits `json:"credits,omitempty"`
	Images       *Images       `json:"images,omitempty"`
	Videos       *Videos       `json:"videos,omitempty"`
	Episodes     []Episode     `json:"episodes,omitempty"`
	ExternalIDs  *ExternalIDs  `json:"external_ids,omitempty"`
}

// Episode is one episode of a season.
type Episode struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Overview       string        `json:"overview,omitempty"`
	Backdrop       string        `json:"still_path,omitempty"`
	ProductionCode string        `json:"production_code,omitempty"`
	AirDate        Date          `json:"air_date"`
	SeasonNumber   int           `json:"season_number"`
	EpisodeNumber  int           `json:"episode_number"`
	ShowID         int           `json:"show_id,omitempty"`
	Credits        *MediaCredits `json:"credits,omitempty"`
	Images         *Images       `json:"images,omitempty"`
	Videos         *Videos       `json:"videos,omitempty"`
	ExternalIDs    *ExternalIDs  `json:"external_ids,omitempty"`
	VoteAverage    float64       `json:"vote_average"`
	VoteCount      int           `json:"vote_count"`
	Rating         float64       `json:"rating,omitempty"`
}

// Person is a cast or crew member.
type Person struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Adult       bool          `json:"adult"`
	KnownAs     []string      `json:"also_known_as,omitempty"`
	KnownFor    []Resource    `json:"known_for,omitempty"`
	Department  string        `json:"known_for_department,omitempty"`
	Biography   string        `json:"biography,omitempty"`
	BirthDay    Date          `json:"birthday"`
	DeathDay    Date          `json:"deathday"`
	HomePage    string        `json:"homepage,omitempty"`
	Imdb        string        `json:"imdb_id,omitempty"`
	BirthPlace  string        `json:"place_of_birth,omitempty"`
	Poster      string        `json:"profile_path,omitempty"`
	Popularity  float64       `json:"popularity"`
	Images      *PersonImages `json:"images,omitempty"`
	ExternalIDs *ExternalIDs  `json:"external_ids,omitempty"`
}

func (p *Person) bindResolver(rs *Resolver) {
	for i := range p.KnownFor {
		p.KnownFor[i].bindResolver(rs)
	}
}

// Collection groups movies of one franchise.
type Collection struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Overview string  `json:"overview,omitempty"`
	Poster   string  `json:"poster_path,omitempty"`
	Backdrop string  `json:"backdrop_path,omitempty"`
	Parts    []Movie `json:"parts,omitempty"`
}

// Company is a production company.
type Company struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	HeadQuarters string   `json:"headquarters,omitempty"`
	HomePage     string   `json:"homepage,omitempty"`
	Parent       *Company `json:"parent_company,omitempty"`
	Logo         string   `json:"logo_path,omitempty"`
	Country      string   `json:"origin_country,omitempty"`
}

// Network is a TV network.
type Network struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Logo    string `json:"logo_path,omitempty"`
	Country string `json:"origin_country,omitempty"`
}

// Country is a production country.
type Country struct {
	Code string `json:"iso_3166_1"`
	Name string `json:"name"`
}

// Language is a spoken language.
type Language struct {
	Code string `json:"iso_639_1"`
	Name string `json:"name"`
}

// Genre is a movie or TV genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Genres is the genre list response.
type Genres struct {
	Results []Genre `json:"genres"`
}

// ExternalIDs maps an item to identifiers in other databases.
type ExternalIDs struct {
	ID          int    `json:"id"`
	Imdb        string `json:"imdb_id,omitempty"`
	Freebase    string `json:"freebase_id,omitempty"`
	FreebaseMid string `json:"freebase_mid,omitempty"`
	Tvdb        int    `json:"tvdb_id,omitempty"`
	Tvrage      int    `json:"tvrage_id,omitempty"`
}

// Image is one image asset. FilePath is relative to the image host.
type Image struct {
	FilePath     string  `json:"file_path"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	LanguageCode string  `json:"iso_639_1,omitempty"`
	AspectRatio  float64 `json:"aspect_ratio"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
}

// Images holds the artwork of a movie, show, season or episode.
type Images struct {
	ID        int     `json:"id,omitempty"`
	Backdrops []Image `json:"backdrops,omitempty"`
	Posters   []Image `json:"posters,omitempty"`
	Stills    []Image `json:"stills,omitempty"`
}

// PersonImages holds the profile images of a person.
type PersonImages struct {
	ID      int     `json:"id,omitempty"`
	Results []Image `json:"profiles"`
}

// AlternativeTitles lists titles of a movie in other countries.
type AlternativeTitles struct {
	ID      int                `json:"id,omitempty"`
	Results []AlternativeTitle `json:"titles"`
}

// AlternativeTitle is a movie title in one country.
type AlternativeTitle struct {
	Code  string `json:"iso_3166_1"`
	Title string `json:"title"`
}

// MediaCredits is the cast and crew of a movie, show, season or episode.
type MediaCredits struct {
	ID   int         `json:"id,omitempty"`
	Cast []MediaCast `json:"cast"`
	Crew []MediaCrew `json:"crew"`
}

// MediaCast is one cast entry.
type MediaCast struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
	Profile   string `json:"profile_path,omitempty"`
}

// MediaCrew is one crew entry.
type MediaCrew struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Job        string `json:"job"`
	Profile    string `json:"profile_path,omitempty"`
}

// Keyword is a tag attached to a movie or show.
type Keyword struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Keywords is the keyword list of a movie.
type Keywords struct {
	ID      int       `json:"id,omitempty"`
	Results []Keyword `json:"keywords"`
}

// ShowKeywords is the keyword list of a show, which the service wraps
// under a different key than movie keywords.
type ShowKeywords struct {
	ID      int       `json:"id,omitempty"`
	Results []Keyword `json:"results"`
}

// Translation is an available translation.
type Translation struct {
	LanguageCode string `json:"iso_639_1"`
	Name         string `json:"name"`
	EnglishName  string `json:"english_name"`
}

// Translations lists the translations of an item.
type Translations struct {
	ID      int           `json:"id,omitempty"`
	Results []Translation `json:"translations"`
}

// Releases lists per-country release information of a movie.
type Releases struct {
	ID        int              `json:"id,omitempty"`
	Countries []CountryRelease `json:"countries"`
}

// CountryRelease is the release of a movie in one country.
type CountryRelease struct {
	Code          string `json:"iso_3166_1"`
	Certification string `json:"certification"`
	ReleaseDate   Date   `json:"release_date"`
}

// Video is a trailer or clip hosted on an external site.
type Video struct {
	ID           string `json:"id"`
	LanguageCode string `json:"iso_639_1"`
	Key          string `json:"key"`
	Name         string `json:"name"`
	Site         string `json:"site"`
	Size         int    `json:"size"`
	Type         string `json:"type"`
}

// Videos lists the videos of an item.
type Videos struct {
	ID      int     `json:"id,omitempty"`
	Results []Video `json:"results"`
}

// PersonCredits is the filmography of a person.
type PersonCredits struct {
	ID   int          `json:"id,omitempty"`
	Cast []PersonCast `json:"cast"`
	Crew []PersonCrew `json:"crew"`
}

// PersonCast is one acting credit of a person. Title is set for movies and
// Name for shows.
type PersonCast struct {
	ID            int       `json:"id"`
	MediaType     MediaType `json:"media_type,omitempty"`
	Title         string    `json:"title,omitempty"`
	Name          string    `json:"name,omitempty"`
	Character     string    `json:"character"`
	OriginalTitle string    `json:"original_title,omitempty"`
	Poster        string    `json:"poster_path,omitempty"`
	ReleaseDate   Date      `json:"release_date"`
	FirstAirDate  Date      `json:"first_air_date"`
	Adult         bool      `json:"adult"`
}

// PersonCrew is one crew credit of a person.
type PersonCrew struct {
	ID            int       `json:"id"`
	MediaType     MediaType `json:"media_type,omitempty"`
	Title         string    `json:"title,omitempty"`
	Name          string    `json:"name,omitempty"`
	OriginalTitle string    `json:"original_title,omitempty"`
	Department    string    `json:"department"`
	Job           string    `json:"job"`
	Poster        string    `json:"poster_path,omitempty"`
	ReleaseDate   Date      `json:"release_date"`
	FirstAirDate  Date      `json:"first_air_date"`
	Adult         bool      `json:"adult"`
}

// Review is a user review.
type Review struct {
	ID           string    `json:"id"`
	Author       string    `json:"author"`
	Content      string    `json:"content"`
	LanguageCode string    `json:"iso_639_1,omitempty"`
	MediaID      int       `json:"media_id,omitempty"`
	MediaTitle   string    `json:"media_title,omitempty"`
	MediaType    MediaType `json:"media_type,omitempty"`
	URL          string    `json:"url"`
}

// List is a user-curated movie list.
type List struct {
	ID            ListID  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	CreatedBy     string  `json:"created_by"`
	FavoriteCount int     `json:"favorite_count"`
	ItemCount     int     `json:"item_count"`
	LanguageCode  string  `json:"iso_639_1"`
	Poster        string  `json:"poster_path,omitempty"`
	Items         []Movie `json:"items,omitempty"`
}

// Account is the account behind a session.
type Account struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	UserName     string `json:"username"`
	IncludeAdult bool   `json:"include_adult"`
	LanguageCode string `json:"iso_639_1"`
	CountryCode  string `json:"iso_3166_1"`
}

// Job is a department and the job titles in it.
type Job struct {
	Department string   `json:"department"`
	Titles     []string `json:"job_list"`
}

// Jobs is the job list response.
type Jobs struct {
	Results []Job `json:"jobs"`
}

// Certification is one content rating of a country.
type Certification struct {
	Name    string `json:"certification"`
	Meaning string `json:"meaning"`
	Order   int    `json:"order"`
}

// Certifications maps country codes to their content ratings.
type Certifications struct {
	Results map[string][]Certification `json:"certifications"`
}

// Changes is the change history of one item.
type Changes struct {
	Results []Change `json:"changes"`
}

// Change groups the changes made to one field.
type Change struct {
	Key   string        `json:"key"`
	Items []ChangedItem `json:"items"`
}

// ChangedItem is a single edit. Value holds the new value in its wire form
// since its shape depends on Key.
type ChangedItem struct {
	ID           string          `json:"id"`
	Action       string          `json:"action"`
	Time         string          `json:"time"`
	Value        json.RawMessage `json:"value,omitempty"`
	LanguageCode string          `json:"iso_639_1,omitempty"`
}

// ChangedListItem identifies an item changed within a time window.
type ChangedListItem struct {
	ID    int  `json:"id"`
	Adult bool `json:"adult"`
}

// Configuration holds the image host settings.
type Configuration struct {
	Images     ImageConfiguration `json:"images"`
	ChangeKeys []string           `json:"change_keys"`
}

// ImageConfiguration lists the image base URLs and available sizes.
type ImageConfiguration struct {
	BaseURL       string   `json:"base_url"`
	SecureBaseURL string   `json:"secure_base_url"`
	BackdropSizes []string `json:"backdrop_sizes"`
	LogoSizes     []string `json:"logo_sizes"`
	PosterSizes   []string `json:"poster_sizes"`
	ProfileSizes  []string `json:"profile_sizes"`
	StillSizes    []string `json:"still_sizes"`
}

// Timezones maps country codes to their time zone names.
type Timezones map[string][]string

// ItemStatus reports whether a list contains an item.
type ItemStatus struct {
	ID      ListID `json:"id"`
	Present bool   `json:"item_present"`
}

// ListCreated is the response to a list creation.
type ListCreated struct {
	StatusResponse
	ListID ListID `json:"list_id"`
}

// ListID identifies a list. The service has used both numeric and string
// identifiers; either form decodes.
type ListID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ListID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ListID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ListID(n.String())
		return nil
	}
	*id = ""
	return nil
}

// StatusResponse is the acknowledgement of a write call.
type StatusResponse struct {
	Code    int    `json:"status_code"`
	Message string `json:"status_message"`
}

// Succeeded reports whether the code denotes a successful create, update
// or delete.
func (s StatusResponse) Succeeded() bool {
	switch s.Code {
	case StatusSuccess, StatusUpdated, StatusDeleted:
		return true
	}
	return false
}

// AuthenticationResult is the response of the authentication endpoints.
type AuthenticationResult struct {
	Success        bool   `json:"success"`
	ExpiresAt      string `json:"expires_at,omitempty"`
	RequestToken   string `json:"request_token,omitempty"`
	SessionID      string `json:"session_id,omitempty"`
	GuestSessionID string `json:"guest_session_id,omitempty"`
}
