package awshttp

import (
	"strings"

	"github.com/samber/lo"
)

// Protocol is the wire dialect a service speaks. It decides content
// negotiation and whether the x-amz-target header is injected.
type Protocol int

const (
	ProtocolEC2 Protocol = iota
	ProtocolJSON
	ProtocolQuery
	ProtocolRestJSON
	ProtocolRestXML
)

// SigningScheme selects how requests to a service are authenticated.
type SigningScheme int

const (
	// SignV4 is AWS Signature Version 4.
	SignV4 SigningScheme = iota
	// SignS3 is the legacy S3 scheme. Sending with it fails: it is not
	// implemented, the variant only exists so descriptors for those
	// services still construct.
	SignS3
)

// TimestampFormat is how a service expects timestamps rendered inside
// request payloads. The signing timestamp itself always uses FormatPosix.
type TimestampFormat int

const (
	ISO8601 TimestampFormat = iota
	RFC822
	UnixTimestamp
)

// HostStyle picks the hostname scheme for the default resolvers.
type HostStyle int

const (
	HostAmazon HostStyle = iota
	HostDigitalOcean
)

// Endpoint is either global or bound to a region.
type Endpoint struct {
	regional bool
	region   string
}

func GlobalEndpoint() Endpoint {
	return Endpoint{}
}

func RegionalEndpoint(region string) Endpoint {
	return Endpoint{regional: true, region: region}
}

func (e Endpoint) IsRegional() bool {
	return e.regional
}

// EndpointRegion returns the bound region and whether one exists.
func (e Endpoint) EndpointRegion() (string, bool) {
	return e.region, e.regional
}

// HostResolverFunc maps an endpoint and endpoint prefix to a bare hostname,
// no scheme and no trailing slash.
type HostResolverFunc func(endpoint Endpoint, endpointPrefix string) string

// RegionResolverFunc maps an endpoint to the region used in the credential
// scope and key derivation.
type RegionResolverFunc func(endpoint Endpoint) string

// Service describes everything request shaping and signing need to know
// about one AWS service. It is a plain value: every setter returns a
// modified copy, so descriptors can be shared across goroutines freely.
type Service struct {
	EndpointPrefix  string
	APIVersion      string
	Protocol        Protocol
	Signer          SigningScheme
	JSONVersion     string // "" when unset
	SigningName     string // overrides EndpointPrefix in scope and key derivation
	TargetPrefix    string
	TimestampFormat TimestampFormat
	XMLNamespace    string
	Endpoint        Endpoint
	HostStyle       HostStyle

	// Escape hatches for backends the built-in styles don't cover.
	HostResolver   HostResolverFunc
	RegionResolver RegionResolverFunc
}

func define(prefix, apiVersion string, protocol Protocol, signer SigningScheme, endpoint Endpoint) Service {
	return Service{
		EndpointPrefix:  prefix,
		APIVersion:      apiVersion,
		Protocol:        protocol,
		Signer:          signer,
		TargetPrefix:    "AWS" + strings.ToUpper(prefix) + "_" + strings.ReplaceAll(apiVersion, "-", ""),
		TimestampFormat: lo.Ternary(protocol == ProtocolJSON || protocol == ProtocolRestJSON, UnixTimestamp, ISO8601),
		Endpoint:        endpoint,
	}
}

// DefineGlobal describes a service with a single global endpoint, e.g. sts.
func DefineGlobal(prefix, apiVersion string, protocol Protocol, signer SigningScheme) Service {
	return define(prefix, apiVersion, protocol, signer, GlobalEndpoint())
}

// DefineRegional describes a service reached through a per-region endpoint.
func DefineRegional(prefix, apiVersion string, protocol Protocol, signer SigningScheme, region string) Service {
	return define(prefix, apiVersion, protocol, signer, RegionalEndpoint(region))
}

func (s Service) SetJSONVersion(v string) Service {
	s.JSONVersion = v
	return s
}

func (s Service) SetSigningName(name string) Service {
	s.SigningName = name
	return s
}

func (s Service) SetTargetPrefix(prefix string) Service {
	s.TargetPrefix = prefix
	return s
}

func (s Service) SetTimestampFormat(f TimestampFormat) Service {
	s.TimestampFormat = f
	return s
}

func (s Service) SetXMLNamespace(ns string) Service {
	s.XMLNamespace = ns
	return s
}

// ToDigitalOceanSpaces rebinds host and region resolution to DigitalOcean
// Spaces, which speaks the same protocol on <region>.digitaloceanspaces.com.
func (s Service) ToDigitalOceanSpaces() Service {
	s.HostStyle = HostDigitalOcean
	return s
}

// Host resolves the bare hostname requests are sent to.
func (s Service) Host() string {
	if s.HostResolver != nil {
		return s.HostResolver(s.Endpoint, s.EndpointPrefix)
	}
	region, regional := s.Endpoint.EndpointRegion()
	switch s.HostStyle {
	case HostDigitalOcean:
		return lo.Ternary(regional, region, "nyc3") + ".digitaloceanspaces.com"
	default:
		if regional {
			return s.EndpointPrefix + "." + region + ".amazonaws.com"
		}
		return s.EndpointPrefix + ".amazonaws.com"
	}
}

// Region resolves the region used for signing. Global endpoints sign as
// us-east-1, which is what the SigV4 spec dictates.
func (s Service) Region() string {
	if s.RegionResolver != nil {
		return s.RegionResolver(s.Endpoint)
	}
	if region, regional := s.Endpoint.EndpointRegion(); regional {
		return region
	}
	if s.HostStyle == HostDigitalOcean {
		return "nyc3"
	}
	return "us-east-1"
}

// signingName is the service segment of the credential scope.
func (s Service) signingName() string {
	return lo.Ternary(s.SigningName != "", s.SigningName, s.EndpointPrefix)
}

// ContentType is the request content type the service expects.
func (s Service) ContentType() string {
	switch {
	case s.Protocol == ProtocolRestXML:
		return "application/xml; charset=utf-8"
	case s.JSONVersion != "":
		return "application/x-amz-json-" + s.JSONVersion + "; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

// AcceptType is the response content type the service is asked for.
func (s Service) AcceptType() string {
	return lo.Ternary(s.Protocol == ProtocolRestXML, "application/xml", "application/json")
}
