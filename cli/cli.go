// Package cli provides command-line access to the connection editor.
// This allows users to inspect and modify connection profiles from the
// terminal without the interactive view.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/yllada/nm-connection-editor/common"
	"github.com/yllada/nm-connection-editor/config"
	"github.com/yllada/nm-connection-editor/editor"
	"github.com/yllada/nm-connection-editor/keyring"
	"github.com/yllada/nm-connection-editor/notify"
	"github.com/yllada/nm-connection-editor/settings"
	"github.com/yllada/nm-connection-editor/validate"
)

// CLI represents the command-line interface.
type CLI struct {
	provider      common.NetworkProvider
	notify        bool
	confirmDelete bool
}

// New creates a new CLI instance over the given provider, honoring the
// user's notification and delete-confirmation preferences.
func New(provider common.NetworkProvider, cfg *config.Config) *CLI {
	return &CLI{
		provider:      provider,
		notify:        cfg.ShowNotifications,
		confirmDelete: cfg.ConfirmDelete,
	}
}

// ListConnections lists all stored connection profiles.
func (c *CLI) ListConnections() error {
	conns, err := c.provider.Connections()
	if err != nil {
		return fmt.Errorf("failed to list connections: %w", err)
	}

	if len(conns) == 0 {
		fmt.Println("No connection profiles stored.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "UUID\tNAME\tTYPE\tMASTER")
	fmt.Fprintln(w, "----\t----\t----\t------")

	for _, conn := range conns {
		master := conn.Master
		if master == "" {
			master = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			common.ShortID(conn.UUID), conn.ID, conn.Type, master)
	}

	w.Flush()
	return nil
}

// ListDevices lists the provider's current devices.
func (c *CLI) ListDevices() error {
	devices, err := c.provider.Devices()
	if err != nil {
		return fmt.Errorf("failed to list devices: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTERFACE\tTYPE\tPATH")
	fmt.Fprintln(w, "---------\t----\t----")

	for _, dev := range devices {
		iface := dev.Interface
		if iface == "" {
			iface = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", iface, dev.Type, dev.Path)
	}

	w.Flush()
	return nil
}

// Show prints one profile's settings snapshot. Secret-bearing keys are
// masked.
func (c *CLI) Show(nameOrUUID string) error {
	conn, err := c.resolve(nameOrUUID)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s, %s)\n\n", conn.ID, conn.UUID, conn.Type)

	keys := make([]string, 0, len(conn.Data))
	for key := range conn.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, key := range keys {
		value := conn.Data[key]
		if key == settings.KeyPrivateKey {
			value = "(hidden)"
		}
		fmt.Fprintf(w, "%s\t%s\n", key, value)
	}
	w.Flush()
	return nil
}

// Open opens a profile the way the bare positional argument does:
// WireGuard profiles open for editing, everything else is shown
// read-only.
func (c *CLI) Open(nameOrUUID string, assignments []string) error {
	conn, err := c.resolve(nameOrUUID)
	if err != nil {
		return err
	}
	if conn.Type == common.ConnectionTypeVpn {
		return c.Edit(conn.UUID, assignments)
	}
	return c.Show(conn.UUID)
}

// Edit opens a WireGuard profile for editing. With assignments it
// applies them and saves; without, it prints the editable fields and
// their validity so the profile can be reviewed before assembling
// --set assignments. Validation failures block the save and are
// reported per field.
func (c *CLI) Edit(nameOrUUID string, assignments []string) error {
	conn, err := c.resolve(nameOrUUID)
	if err != nil {
		return err
	}

	wg, err := editor.NewWireGuard(c.provider, conn.UUID)
	if err != nil {
		return err
	}

	// A key imported earlier may live only in the keyring, not in the
	// stored snapshot.
	if wg.Form.PrivateKey() == "" {
		if key, err := keyring.Get(conn.UUID); err == nil {
			wg.Form.SetPrivateKey(key)
		}
	}

	if len(assignments) == 0 {
		printForm(wg)
		return nil
	}

	for _, assignment := range assignments {
		key, value, ok := strings.Cut(assignment, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", assignment)
		}
		if err := applyField(wg.Form, key, value); err != nil {
			return err
		}
	}

	if !wg.Form.IsValid() {
		reportValidity(wg.Form.Validity())
		return common.ErrInvalidSetting
	}

	var saveErr error
	done := make(chan struct{})
	wg.Save(func(err error) {
		saveErr = err
		close(done)
	})
	<-done

	if saveErr != nil {
		if c.notify {
			notify.SaveFailed(wg.Name(), saveErr.Error())
		}
		return saveErr
	}

	if c.notify {
		notify.Saved(wg.Name())
	}
	fmt.Printf("Saved %s.\n", wg.Name())
	return nil
}

// Remove deletes a connection profile from the service, along with any
// private key stored for it in the keyring.
func (c *CLI) Remove(nameOrUUID string) error {
	conn, err := c.resolve(nameOrUUID)
	if err != nil {
		return err
	}

	if c.confirmDelete {
		prompt := fmt.Sprintf("Remove %s (%s)?", conn.ID, common.ShortID(conn.UUID))
		if !confirm(prompt) {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := c.provider.RemoveConnection(conn.Path); err != nil {
		return err
	}

	if err := keyring.Delete(conn.UUID); err != nil {
		common.LogWarn("keyring delete failed for %s: %v", common.ShortID(conn.UUID), err)
	}

	if c.notify {
		notify.Removed(conn.ID)
	}
	fmt.Printf("Removed %s.\n", conn.ID)
	return nil
}

// GenerateKeys prints a fresh WireGuard keypair.
func (c *CLI) GenerateKeys() error {
	privateKey, publicKey, err := settings.GenerateKeyPair()
	if err != nil {
		return err
	}
	fmt.Printf("private key: %s\npublic key:  %s\n", privateKey, publicKey)
	return nil
}

// ImportPrivateKey prompts for a WireGuard private key without echo,
// stores it in the keyring, and writes it to the profile.
func (c *CLI) ImportPrivateKey(nameOrUUID string) error {
	conn, err := c.resolve(nameOrUUID)
	if err != nil {
		return err
	}

	fmt.Print("Private key: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}

	key := strings.TrimSpace(string(raw))
	if validate.Key(key) != validate.Acceptable {
		return fmt.Errorf("%w: not a valid WireGuard key", common.ErrInvalidSetting)
	}

	if err := keyring.Store(conn.UUID, key); err != nil {
		common.LogWarn("keyring store failed for %s: %v", common.ShortID(conn.UUID), err)
	}

	return c.Edit(conn.UUID, []string{settings.KeyPrivateKey + "=" + key})
}

// PrintHelp prints CLI usage help.
func PrintHelp() {
	fmt.Println(`Connection Editor - Command Line Interface

Usage:
  nm-connection-editor [OPTIONS] [UUID]

Options:
  --version           Show version and exit
  --verbose           Enable verbose logging
  --list              List all connection profiles
  --devices           List network devices
  --show NAME         Show a profile's settings
  --edit NAME         Edit a WireGuard profile (reviews fields without --set)
  --set k=v[,k=v]     Field assignments for --edit
  --remove NAME       Remove a profile and its stored private key
  --import-key NAME   Import a WireGuard private key for a profile
  --genkey            Generate a WireGuard keypair
  --help              Show this help message

Examples:
  nm-connection-editor --list
  nm-connection-editor --show "Office VPN"
  nm-connection-editor --edit "Office VPN" --set address-v4=10.0.0.2/24
  nm-connection-editor --genkey

Notes:
  - A connection UUID as the only argument opens that profile for editing
  - Run without options to browse the connection list`)
}

// resolve finds a profile by UUID first, then by name.
func (c *CLI) resolve(nameOrUUID string) (common.ConnectionInfo, error) {
	if conn, ok := c.provider.FindConnectionByUUID(nameOrUUID); ok {
		return conn, nil
	}

	conns, err := c.provider.Connections()
	if err != nil {
		return common.ConnectionInfo{}, fmt.Errorf("failed to list connections: %w", err)
	}
	for _, conn := range conns {
		if conn.ID == nameOrUUID {
			return conn, nil
		}
	}
	return common.ConnectionInfo{}, fmt.Errorf("%w: %s", common.ErrConnectionNotFound, nameOrUUID)
}

// printForm shows a profile's editable fields with their validity.
func printForm(wg *editor.WireGuard) {
	fmt.Printf("%s (%s)\n\n", wg.Name(), wg.UUID())

	v := wg.Form.Validity()
	privateKey := ""
	if wg.Form.PrivateKey() != "" {
		privateKey = "(hidden)"
	}

	rows := []struct {
		key   string
		value string
		valid bool
	}{
		{settings.KeyAddressV4, wg.Form.AddressV4(), v.Address},
		{settings.KeyAddressV6, wg.Form.AddressV6(), v.Address},
		{settings.KeyPrivateKey, privateKey, v.PrivateKey},
		{settings.KeyPublicKey, wg.Form.PublicKey(), v.PublicKey},
		{settings.KeyAllowedIPs, wg.Form.AllowedIPs(), v.AllowedIPs},
		{"endpoint-address", wg.Form.EndpointAddress(), v.Endpoint},
		{"endpoint-port", wg.Form.EndpointPort(), v.Endpoint},
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		state := "ok"
		if !row.valid {
			state = "invalid"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", row.key, row.value, state)
	}
	w.Flush()
}

// confirm reads a yes/no answer from stdin. Anything but an explicit
// yes declines.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// applyField routes one assignment to the matching form setter.
func applyField(form *settings.WireGuardForm, key, value string) error {
	switch key {
	case settings.KeyAddressV4:
		form.SetAddressV4(value)
	case settings.KeyAddressV6:
		form.SetAddressV6(value)
	case settings.KeyPrivateKey:
		form.SetPrivateKey(value)
	case settings.KeyPublicKey:
		form.SetPublicKey(value)
	case settings.KeyAllowedIPs:
		form.SetAllowedIPs(value)
	case "endpoint-address":
		form.SetEndpointAddress(value)
	case "endpoint-port":
		form.SetEndpointPort(value)
	case settings.KeyEndpoint:
		address, port := settings.SplitEndpoint(value)
		form.SetEndpointAddress(address)
		form.SetEndpointPort(port)
	default:
		return errors.New("unknown field: " + key)
	}
	return nil
}

// reportValidity prints which fields are blocking the save.
func reportValidity(v settings.FieldValidity) {
	report := []struct {
		name  string
		valid bool
	}{
		{"address", v.Address},
		{"private key", v.PrivateKey},
		{"public key", v.PublicKey},
		{"allowed IPs", v.AllowedIPs},
		{"endpoint", v.Endpoint},
	}
	for _, field := range report {
		if !field.valid {
			fmt.Fprintf(os.Stderr, "invalid field: %s\n", field.name)
		}
	}
}
