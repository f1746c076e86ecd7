package nm

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/yllada/nm-connection-editor/common"
)

// VpnServiceWireGuard is the VPN plugin service name stored on
// WireGuard profiles.
const VpnServiceWireGuard = "org.freedesktop.NetworkManager.wireguard"

// parseConnection extracts the provider-neutral profile description
// from NetworkManager's nested settings maps.
func parseConnection(raw map[string]map[string]dbus.Variant) common.ConnectionInfo {
	info := common.ConnectionInfo{Autoconnect: true}

	if group, ok := raw["connection"]; ok {
		info.UUID = stringValue(group, "uuid")
		info.ID = stringValue(group, "id")
		info.Type = stringValue(group, "type")
		info.Master = stringValue(group, "master")
		info.SlaveType = stringValue(group, "slave-type")
		if v, ok := group["autoconnect"]; ok {
			if b, ok := v.Value().(bool); ok {
				info.Autoconnect = b
			}
		}
	}

	// The type-specific snapshot: VPN profiles keep theirs in the vpn
	// group's data map, everything else in the group named after the
	// connection type.
	if info.Type == common.ConnectionTypeVpn {
		if group, ok := raw["vpn"]; ok {
			if data, ok := group["data"].Value().(map[string]string); ok {
				info.Data = data
			}
		}
	} else if group, ok := raw[info.Type]; ok {
		info.Data = make(map[string]string, len(group))
		for key, v := range group {
			info.Data[key] = fmt.Sprint(v.Value())
		}
	}

	if info.Data == nil {
		info.Data = map[string]string{}
	}
	return info
}

// buildConnection assembles NetworkManager's nested settings maps from
// a provider-neutral profile description.
func buildConnection(info common.ConnectionInfo) map[string]map[string]dbus.Variant {
	connection := map[string]dbus.Variant{
		"id":          dbus.MakeVariant(info.ID),
		"uuid":        dbus.MakeVariant(info.UUID),
		"type":        dbus.MakeVariant(info.Type),
		"autoconnect": dbus.MakeVariant(info.Autoconnect),
	}
	if info.Master != "" {
		connection["master"] = dbus.MakeVariant(info.Master)
		connection["slave-type"] = dbus.MakeVariant(info.SlaveType)
	}

	raw := map[string]map[string]dbus.Variant{
		"connection": connection,
	}

	if info.Type == common.ConnectionTypeVpn {
		raw["vpn"] = map[string]dbus.Variant{
			"service-type": dbus.MakeVariant(VpnServiceWireGuard),
			"data":         dbus.MakeVariant(map[string]string(info.Data)),
		}
		return raw
	}

	group := make(map[string]dbus.Variant, len(info.Data))
	for key, value := range info.Data {
		group[key] = dbus.MakeVariant(value)
	}
	raw[info.Type] = group
	return raw
}

func stringValue(group map[string]dbus.Variant, key string) string {
	if v, ok := group[key]; ok {
		if s, ok := v.Value().(string); ok {
			return s
		}
	}
	return ""
}
