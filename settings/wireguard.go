package settings

import (
	"github.com/yllada/nm-connection-editor/validate"
)

// FieldValidity holds one boolean per validated WireGuard field.
type FieldValidity struct {
	Address    bool
	PrivateKey bool
	PublicKey  bool
	AllowedIPs bool
	Endpoint   bool
}

// WireGuardForm is the editable state of a WireGuard connection editor.
// Every setter re-runs the validator for its field, updates the field's
// validity flag, and fires the changed callback; the surrounding dialog
// uses IsValid to gate its save action.
type WireGuardForm struct {
	addressV4       string
	addressV6       string
	privateKey      string
	publicKey       string
	allowedIPs      string
	endpointAddress string
	endpointPort    string

	validity  FieldValidity
	onChanged func()
}

// NewWireGuardForm returns an empty form. The endpoint is an optional
// field, so a blank endpoint starts out valid; everything else starts
// invalid until populated.
func NewWireGuardForm() *WireGuardForm {
	return &WireGuardForm{
		validity: FieldValidity{Endpoint: true},
	}
}

// OnChanged registers a callback fired after every revalidation.
func (f *WireGuardForm) OnChanged(fn func()) {
	f.onChanged = fn
}

// Load populates the form from a settings snapshot and revalidates
// every field. The stored endpoint is split back into address and port.
func (f *WireGuardForm) Load(snap Snapshot) {
	f.addressV4 = snap[KeyAddressV4]
	f.addressV6 = snap[KeyAddressV6]
	f.privateKey = snap[KeyPrivateKey]
	f.publicKey = snap[KeyPublicKey]
	f.allowedIPs = snap[KeyAllowedIPs]
	f.endpointAddress, f.endpointPort = SplitEndpoint(snap[KeyEndpoint])

	f.checkAddress()
	f.checkPrivateKey()
	f.checkPublicKey()
	f.checkAllowedIPs()
	f.checkEndpoint()
}

// Save merges the form's fields into a copy of the given snapshot.
// Empty fields are removed rather than stored blank. The endpoint is
// only (re)written when an endpoint address is present.
func (f *WireGuardForm) Save(base Snapshot) Snapshot {
	data := base.Clone()
	data.Set(KeyAddressV4, f.addressV4)
	data.Set(KeyAddressV6, f.addressV6)
	data.Set(KeyPrivateKey, f.privateKey)
	data.Set(KeyPublicKey, f.publicKey)
	data.Set(KeyAllowedIPs, f.allowedIPs)

	if f.endpointAddress != "" {
		data.Set(KeyEndpoint, JoinEndpoint(f.endpointAddress, f.endpointPort))
	}
	return data
}

// SetAddressV4 updates the IPv4 address field.
func (f *WireGuardForm) SetAddressV4(text string) {
	f.addressV4 = text
	f.checkAddress()
}

// SetAddressV6 updates the IPv6 address field.
func (f *WireGuardForm) SetAddressV6(text string) {
	f.addressV6 = text
	f.checkAddress()
}

// SetPrivateKey updates the private key field.
func (f *WireGuardForm) SetPrivateKey(text string) {
	f.privateKey = text
	f.checkPrivateKey()
}

// SetPublicKey updates the peer public key field.
func (f *WireGuardForm) SetPublicKey(text string) {
	f.publicKey = text
	f.checkPublicKey()
}

// SetAllowedIPs updates the allowed-IPs list field.
func (f *WireGuardForm) SetAllowedIPs(text string) {
	f.allowedIPs = text
	f.checkAllowedIPs()
}

// SetEndpointAddress updates the endpoint address field.
func (f *WireGuardForm) SetEndpointAddress(text string) {
	f.endpointAddress = text
	f.checkEndpoint()
}

// SetEndpointPort updates the endpoint port field.
func (f *WireGuardForm) SetEndpointPort(text string) {
	f.endpointPort = text
	f.checkEndpoint()
}

// AddressV4 returns the IPv4 address field.
func (f *WireGuardForm) AddressV4() string { return f.addressV4 }

// AddressV6 returns the IPv6 address field.
func (f *WireGuardForm) AddressV6() string { return f.addressV6 }

// PrivateKey returns the private key field.
func (f *WireGuardForm) PrivateKey() string { return f.privateKey }

// PublicKey returns the peer public key field.
func (f *WireGuardForm) PublicKey() string { return f.publicKey }

// AllowedIPs returns the allowed-IPs list field.
func (f *WireGuardForm) AllowedIPs() string { return f.allowedIPs }

// EndpointAddress returns the endpoint address field.
func (f *WireGuardForm) EndpointAddress() string { return f.endpointAddress }

// EndpointPort returns the endpoint port field.
func (f *WireGuardForm) EndpointPort() string { return f.endpointPort }

// Validity returns the per-field validity flags.
func (f *WireGuardForm) Validity() FieldValidity {
	return f.validity
}

// IsValid reports whether every field is valid, gating save.
func (f *WireGuardForm) IsValid() bool {
	return f.validity.Address &&
		f.validity.PrivateKey &&
		f.validity.PublicKey &&
		f.validity.AllowedIPs &&
		f.validity.Endpoint
}

// checkAddress recomputes the combined address flag: at least one of
// the two address families must be present and well formed, and a
// present family must be well formed.
func (f *WireGuardForm) checkAddress() {
	f.validity.Address = validate.CombinedAddress(f.addressV4, f.addressV6)
	f.changed()
}

func (f *WireGuardForm) checkPrivateKey() {
	f.validity.PrivateKey = validate.Key(f.privateKey) == validate.Acceptable
	f.changed()
}

func (f *WireGuardForm) checkPublicKey() {
	f.validity.PublicKey = validate.Key(f.publicKey) == validate.Acceptable
	f.changed()
}

func (f *WireGuardForm) checkAllowedIPs() {
	f.validity.AllowedIPs = validate.IPList(f.allowedIPs) == validate.Acceptable
	f.changed()
}

func (f *WireGuardForm) checkEndpoint() {
	f.validity.Endpoint = validate.Endpoint(f.endpointAddress, f.endpointPort)
	f.changed()
}

func (f *WireGuardForm) changed() {
	if f.onChanged != nil {
		f.onChanged()
	}
}
