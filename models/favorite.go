package models

// Favorites is the list of property IDs a user has saved, stored under favorites_<user-id>.
type Favorites struct {
	UserID      string   `json:"userId"`
	PropertyIDs []string `json:"propertyIds"`
}

func (f *Favorites) Contains(propertyID string) bool {
	for _, id := range f.PropertyIDs {
		if id == propertyID {
			return true
		}
	}
	return false
}

// Remove drops propertyID and reports whether it was present.
func (f *Favorites) Remove(propertyID string) bool {
	for i, id := range f.PropertyIDs {
		if id == propertyID {
			f.PropertyIDs = append(f.PropertyIDs[:i], f.PropertyIDs[i+1:]...)
			return true
		}
	}
	return false
}
