package awshttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefineRegionalDefaults(t *testing.T) {
	svc := DefineRegional("acm", "2015-12-08", ProtocolJSON, SignV4, "ca-central-1")

	assert.Equal(t, "AWSACM_20151208", svc.TargetPrefix)
	assert.Equal(t, "acm.ca-central-1.amazonaws.com", svc.Host())
	assert.Equal(t, "ca-central-1", svc.Region())
	assert.Equal(t, UnixTimestamp, svc.TimestampFormat)
}

func TestDefineGlobal(t *testing.T) {
	svc := DefineGlobal("sts", "2011-06-15", ProtocolQuery, SignV4)

	assert.Equal(t, "sts.amazonaws.com", svc.Host())
	// global endpoints sign as us-east-1
	assert.Equal(t, "us-east-1", svc.Region())
	assert.Equal(t, ISO8601, svc.TimestampFormat)
}

func TestSettersReturnCopies(t *testing.T) {
	svc := DefineGlobal("acm", "2015-12-08", ProtocolJSON, SignV4)

	modified := svc.
		SetJSONVersion("1.1").
		SetSigningName("acm-pca").
		SetTargetPrefix("CertificateManager").
		SetTimestampFormat(ISO8601).
		SetXMLNamespace("http://acm.amazonaws.com/doc/2015-12-08/")

	assert.Equal(t, "", svc.JSONVersion)
	assert.Equal(t, "", svc.SigningName)
	assert.Equal(t, "AWSACM_20151208", svc.TargetPrefix)
	assert.Equal(t, UnixTimestamp, svc.TimestampFormat)
	assert.Equal(t, "", svc.XMLNamespace)

	assert.Equal(t, "1.1", modified.JSONVersion)
	assert.Equal(t, "acm-pca", modified.SigningName)
	assert.Equal(t, "CertificateManager", modified.TargetPrefix)
	assert.Equal(t, ISO8601, modified.TimestampFormat)
	assert.Equal(t, "http://acm.amazonaws.com/doc/2015-12-08/", modified.XMLNamespace)
}

func TestDigitalOceanSpaces(t *testing.T) {
	regional := DefineRegional("s3", "2006-03-01", ProtocolRestXML, SignV4, "sfo2").ToDigitalOceanSpaces()
	assert.Equal(t, "sfo2.digitaloceanspaces.com", regional.Host())
	assert.Equal(t, "sfo2", regional.Region())

	global := DefineGlobal("s3", "2006-03-01", ProtocolRestXML, SignV4).ToDigitalOceanSpaces()
	assert.Equal(t, "nyc3.digitaloceanspaces.com", global.Host())
	assert.Equal(t, "nyc3", global.Region())
}

func TestCustomResolvers(t *testing.T) {
	svc := DefineGlobal("service", "2015-08-30", ProtocolQuery, SignV4)
	svc.HostResolver = func(endpoint Endpoint, prefix string) string {
		return "example.amazonaws.com"
	}
	svc.RegionResolver = func(endpoint Endpoint) string {
		return "eu-west-1"
	}

	assert.Equal(t, "example.amazonaws.com", svc.Host())
	assert.Equal(t, "eu-west-1", svc.Region())
}

func TestContentTypeMatrix(t *testing.T) {
	tests := []struct {
		name        string
		svc         Service
		contentType string
		acceptType  string
	}{
		{
			name:        "rest xml",
			svc:         DefineGlobal("s3", "2006-03-01", ProtocolRestXML, SignV4),
			contentType: "application/xml; charset=utf-8",
			acceptType:  "application/xml",
		},
		{
			name:        "json version set",
			svc:         DefineGlobal("dynamodb", "2012-08-10", ProtocolJSON, SignV4).SetJSONVersion("1.0"),
			contentType: "application/x-amz-json-1.0; charset=utf-8",
			acceptType:  "application/json",
		},
		{
			name:        "plain json",
			svc:         DefineGlobal("acm", "2015-12-08", ProtocolJSON, SignV4),
			contentType: "application/json; charset=utf-8",
			acceptType:  "application/json",
		},
		{
			name:        "rest xml ignores json version",
			svc:         DefineGlobal("s3", "2006-03-01", ProtocolRestXML, SignV4).SetJSONVersion("1.1"),
			contentType: "application/xml; charset=utf-8",
			acceptType:  "application/xml",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.contentType, tt.svc.ContentType())
			assert.Equal(t, tt.acceptType, tt.svc.AcceptType())
		})
	}
}

func TestSigningNameDefaultsToEndpointPrefix(t *testing.T) {
	svc := DefineGlobal("sts", "2011-06-15", ProtocolQuery, SignV4)
	assert.Equal(t, "sts", svc.signingName())
	assert.Equal(t, "monitoring", svc.SetSigningName("monitoring").signingName())
}
