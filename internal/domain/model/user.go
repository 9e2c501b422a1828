package model

// User is the public profile snapshot returned by user.info.
// Pointer fields are absent for unrated or incomplete profiles.
type User struct {
	Handle                  string `json:"handle"`
	FirstName               string `json:"firstName,omitempty"`
	LastName                string `json:"lastName,omitempty"`
	Contribution            int    `json:"contribution"`
	FriendOfCount           int    `json:"friendOfCount"`
	Organization            string `json:"organization,omitempty"`
	Country                 string `json:"country,omitempty"`
	TitlePhoto              string `json:"titlePhoto,omitempty"`
	RegistrationTimeSeconds int64  `json:"registrationTimeSeconds"`
	Rating                  *int   `json:"rating,omitempty"`
	MaxRating               *int   `json:"maxRating,omitempty"`
	Rank                    string `json:"rank,omitempty"`
	MaxRank                 string `json:"maxRank,omitempty"`
}

// FullName joins the optional name parts for display.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.LastName
	}
}
