package models

// Document is the single persisted object holding every entity of the feed.
// Revision is tracked by the store beside the encoded bytes and is not part of the JSON.
type Document struct {
	Posts       []Post      `json:"posts" yaml:"posts"`
	Users       []User      `json:"users" yaml:"users"`
	Communities []Community `json:"communities" yaml:"communities"`

	Revision int64 `json:"-" yaml:"-"`
}

// Normalize replaces nil collections with empty ones so the encoded form always
// carries all three arrays.
func (d *Document) Normalize() {
	if d.Posts == nil {
		d.Posts = []Post{}
	}
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Communities == nil {
		d.Communities = []Community{}
	}
	for i := range d.Posts {
		if d.Posts[i].Comments == nil {
			d.Posts[i].Comments = []Comment{}
		}
	}
}

// PostIndex returns the index of the first post with the given id, or -1.
func (d *Document) PostIndex(id string) int {
	for i := range d.Posts {
		if d.Posts[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) User(id string) (User, bool) {
	for _, u := range d.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

func (d *Document) Community(name string) (Community, bool) {
	for _, c := range d.Communities {
		if c.Name == name {
			return c, true
		}
	}
	return Community{}, false
}
