package network

import "strings"

// ouiVendors maps the first three MAC octets to a vendor name. The
// table covers the manufacturers most often seen on small business
// networks; unknown prefixes resolve to an empty vendor.
var ouiVendors = map[string]string{
	"00:50:56": "VMware",
	"00:0C:29": "VMware",
	"00:1A:11": "Google",
	"3C:5A:B4": "Google",
	"00:03:93": "Apple",
	"00:1C:B3": "Apple",
	"F0:18:98": "Apple",
	"A4:83:E7": "Apple",
	"00:15:5D": "Microsoft",
	"00:50:F2": "Microsoft",
	"28:16:A8": "Microsoft",
	"00:1B:21": "Intel",
	"A0:36:9F": "Intel",
	"B4:96:91": "Intel",
	"00:04:F2": "Polycom",
	"00:18:0A": "Cisco Meraki",
	"00:1D:D8": "Cisco",
	"58:97:1E": "Cisco",
	"B8:27:EB": "Raspberry Pi",
	"DC:A6:32": "Raspberry Pi",
	"E4:5F:01": "Raspberry Pi",
	"00:11:32": "Synology",
	"24:5E:BE": "QNAP",
	"00:09:0F": "Fortinet",
	"00:1F:33": "Netgear",
	"A0:40:A0": "Netgear",
	"00:14:BF": "Linksys",
	"C0:56:27": "Belkin",
	"18:E8:29": "Ubiquiti",
	"74:AC:B9": "Ubiquiti",
	"F0:9F:C2": "Ubiquiti",
	"00:17:88": "Philips Hue",
	"00:1E:C0": "TP-Link",
	"50:C7:BF": "TP-Link",
	"60:32:B1": "TP-Link",
	"00:26:5A": "D-Link",
	"3C:1E:04": "D-Link",
	"00:24:E4": "Withings",
	"EC:1A:59": "Belkin",
	"44:65:0D": "Amazon",
	"F0:D2:F1": "Amazon",
	"FC:65:DE": "Amazon",
	"5C:41:5A": "Amazon",
	"00:71:47": "Amazon",
	"64:16:66": "Nest",
	"18:B4:30": "Nest",
	"00:25:00": "Apple",
	"00:16:3E": "Xen",
	"52:54:00": "QEMU",
	"08:00:27": "VirtualBox",
	"00:1C:42": "Parallels",
	"02:42:AC": "Docker",
	"00:1E:06": "Wibrain",
	"00:12:17": "Cisco-Linksys",
	"30:9C:23": "Micro-Star",
	"04:D9:F5": "ASUS",
	"2C:FD:A1": "ASUS",
	"00:24:8C": "ASUS",
	"1C:69:7A": "EliteGroup",
	"00:1D:7E": "Cisco-Linksys",
	"D8:50:E6": "ASUS",
	"14:DD:A9": "ASUS",
	"00:26:B9": "Dell",
	"18:A9:9B": "Dell",
	"B8:CA:3A": "Dell",
	"F4:8E:38": "Dell",
	"3C:D9:2B": "Hewlett Packard",
	"94:57:A5": "Hewlett Packard",
	"00:21:5A": "Hewlett Packard",
	"80:C1:6E": "Hewlett Packard",
	"00:21:6A": "Intel",
	"8C:16:45": "Lenovo",
	"54:EE:75": "Lenovo",
	"28:D2:44": "Lenovo",
	"00:59:07": "LenovoEMC",
}

// vendorForMAC resolves the manufacturer from the OUI prefix of a
// MAC address, returning "" when unknown.
func vendorForMAC(mac string) string {
	mac = strings.ToUpper(strings.ReplaceAll(mac, "-", ":"))
	if len(mac) < 8 {
		return ""
	}
	return ouiVendors[mac[:8]]
}
