package dms

// Well-known profile attribute names understood by the DMS.
const (
	PropTargetLibrary        = "%TARGET_LIBRARY"
	PropRecentlyUsedLocation = "%RECENTLY_USED_LOCATION"
	PropObjectIdentifier     = "%OBJECT_IDENTIFIER"
	PropObjectTypeID         = "%OBJECT_TYPE_ID"
	PropVersionID            = "%VERSION_ID"
	PropVersionFileName      = "%VERSION_FILE_NAME"
	PropDocumentNumber       = "%DOCUMENT_NUMBER"
	PropStatus               = "%STATUS"
	PropDocName              = "DOCNAME"
	PropTypeID               = "TYPE_ID"
	PropAuthorID             = "AUTHOR_ID"
	PropTypistID             = "TYPIST_ID"
	PropAbstract             = "ABSTRACT"
	PropAppID                = "APP_ID"
	PropSecurity             = "SECURITY"
)

// PropertySet is an ordered list of profile attributes. Order matters
// to the legacy server, so insertion order is preserved on the wire.
type PropertySet struct {
	items []property
}

// NewPropertySet returns an empty property set.
func NewPropertySet() *PropertySet {
	return &PropertySet{}
}

// Set appends an attribute, replacing an earlier value under the same
// name in place.
func (p *PropertySet) Set(name, value string) *PropertySet {
	for i := range p.items {
		if p.items[i].Name == name {
			p.items[i].Value = value
			return p
		}
	}
	p.items = append(p.items, property{Name: name, Value: value})
	return p
}

// Get returns the value stored under name.
func (p *PropertySet) Get(name string) (string, bool) {
	for _, item := range p.items {
		if item.Name == name {
			return item.Value, true
		}
	}
	return "", false
}

// Len returns the number of attributes in the set.
func (p *PropertySet) Len() int {
	return len(p.items)
}

func (p *PropertySet) wire() propertyList {
	return propertyList{Items: p.items}
}

func propertySetFromWire(list propertyList) *PropertySet {
	return &PropertySet{items: list.Items}
}
