package netstat

import "strings"

// crlf converts a fixture to the line endings netstat writes.
func crlf(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}

var statisticsOutput = crlf(`
IPv4 Statistics

  Packets Received                   = 1234567
  Received Header Errors             = 0
  Received Address Errors            = 12

IPv6 Statistics

  Packets Received                   = 54321
  Received Header Errors             = 0

ICMPv4 Statistics

                            Received    Sent
  Messages                  120         45
  Errors                    0           0
  Echo Replies              10          2

ICMPv6 Statistics

                            Received    Sent
  Messages                  30          40

TCP Statistics for IPv4

  Active Opens                        = 5
  Passive Opens                       = 7
  Segments Received                   = 100

TCP Statistics for IPv6

  Active Opens                        = 1

UDP Statistics for IPv4

  Datagrams Received    = 300
  No Ports              = 4

UDP Statistics for IPv6

  Datagrams Received    = 20
`)

var routingOutput = crlf(`===========================================================================
Interface List
 12...00 15 5d 01 02 03 ......Hyper-V Virtual Ethernet Adapter
  7...0a 00 27 00 00 07 ......VirtualBox Host-Only Ethernet Adapter #2
  1...........................Software Loopback Interface 1
===========================================================================

IPv4 Route Table
===========================================================================
Active Routes:
Network Destination        Netmask          Gateway       Interface  Metric
          0.0.0.0          0.0.0.0      192.168.1.1     192.168.1.10     25
        127.0.0.0        255.0.0.0         On-link         127.0.0.1    331
      192.168.1.0    255.255.255.0         On-link      192.168.1.10    281
===========================================================================
Persistent Routes:
  Network Address          Netmask  Gateway Address  Metric
         10.0.0.0        255.0.0.0         10.0.0.1       1
===========================================================================

IPv6 Route Table
===========================================================================
Active Routes:
 If Metric Network Destination      Gateway
  1    331 ::1/128                  On-link
 12    281 fe80::/64                On-link
 12    281 fe80::1234:5678:9abc:def0/128
                                    On-link
===========================================================================
Persistent Routes:
  None
`)

var connectionsWithPIDOutput = crlf(`
Active Connections

  Proto  Local Address          Foreign Address        State           PID
  TCP    0.0.0.0:135            0.0.0.0:0              LISTENING       1124
  TCP    127.0.0.1:5354         0.0.0.0:0              LISTENING       4416
  TCP    127.0.0.1:5354         127.0.0.1:49669        ESTABLISHED     4416
  TCP    192.168.1.10:49702     140.82.113.25:443      ESTABLISHED     9012
  TCP    [::]:135               [::]:0                 LISTENING       1124
  TCP    [::1]:8080             [::]:0                 LISTENING       7788
  UDP    0.0.0.0:123            *:*                                    2260
  UDP    127.0.0.1:1900         *:*                                    5160
`)

var connectionsWithExecutableOutput = crlf(`
Active Connections

  Proto  Local Address          Foreign Address        State
  TCP    0.0.0.0:135            DESKTOP:0              LISTENING
  RpcSs
 [svchost.exe]
  TCP    0.0.0.0:445            DESKTOP:0              LISTENING
 Can not obtain ownership information
  TCP    127.0.0.1:6463         DESKTOP:0              LISTENING
 [Discord.exe]
`)

var ethernetOutput = crlf(`Interface Statistics

                           Received            Sent

Bytes                    3995837939      1137785023
Unicast packets            5398617         2894196
Non-unicast packets          40452           14405
Discards                         0               0
Errors                           0               0
Unknown protocols                0
`)
