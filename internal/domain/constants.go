package domain

const (
	RoleCustomer     = "CUSTOMER"
	RoleProfessional = "PROFESSIONAL"
	RoleAdmin        = "ADMIN"
)

const (
	StatusAvailable = "available"
	StatusBusy      = "busy"
	StatusOffline   = "offline"
)

// ValidStatus reports whether s is one of the known availability statuses.
func ValidStatus(s string) bool {
	return s == StatusAvailable || s == StatusBusy || s == StatusOffline
}

const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
	PlatformWeb     = "web"
)

const (
	NotifTypeLocationUpdate = "LOCATION_UPDATE"
	NotifTypeStatusChange   = "STATUS_CHANGE"
	NotifTypeGeneric        = "GENERIC"
)
