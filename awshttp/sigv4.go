package awshttp

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	signingAlgorithm = "AWS4-HMAC-SHA256"
	timeFormat       = "20060102T150405Z"
	shortTimeFormat  = "20060102"
	awsV4Request     = "aws4_request"
)

func getHMAC(key []byte, data []byte) []byte {
	hash := hmac.New(sha256.New, key)
	hash.Write(data)
	return hash.Sum(nil)
}

func getSHA256(data []byte) []byte {
	hash := sha256.New()
	hash.Write(data)
	return hash.Sum(nil)
}

// FormatPosix renders t for the x-amz-date header and the string-to-sign:
// basic-format ISO 8601, YYYYMMDDTHHMMSSZ. The first eight characters are
// the short date used in the credential scope.
func FormatPosix(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

// FormatTimestamp renders t the way the service expects timestamps inside
// payloads. Signing always uses FormatPosix regardless.
func (s Service) FormatTimestamp(t time.Time) string {
	switch s.TimestampFormat {
	case RFC822:
		return t.UTC().Format(time.RFC1123)
	case UnixTimestamp:
		return strconv.FormatInt(t.Unix(), 10)
	default:
		return t.UTC().Format("2006-01-02T15:04:05Z")
	}
}

// CredentialScope binds a derived key to a day, region and service:
// <shortDate>/<region>/<service>/aws4_request.
func CredentialScope(shortDate, region, service string) string {
	return shortDate + "/" + region + "/" + service + "/" + awsV4Request
}

// StringToSign is the four-line string whose HMAC under the signing key is
// the signature.
func StringToSign(amzDate, scope, canonicalRequest string) string {
	s := signingAlgorithm + "\n"
	s += amzDate + "\n"
	s += scope + "\n"
	s += fmt.Sprintf("%x", getSHA256([]byte(canonicalRequest)))
	return s
}

// SigningKey derives the per-day signing key from the secret by the SigV4
// HMAC chain. Intermediates are raw bytes, never hex.
func SigningKey(secret, shortDate, region, service string) []byte {
	dateKey := getHMAC([]byte("AWS4"+secret), []byte(shortDate))
	dateRegionKey := getHMAC(dateKey, []byte(region))
	dateRegionServiceKey := getHMAC(dateRegionKey, []byte(service))
	return getHMAC(dateRegionServiceKey, []byte(awsV4Request))
}

// SignatureHex is the final signature: HMAC of the string-to-sign under the
// signing key, lowercase hex.
func SignatureHex(signingKey []byte, stringToSign string) string {
	return fmt.Sprintf("%x", getHMAC(signingKey, []byte(stringToSign)))
}

// attachInitialHeaders appends the pre-signing headers after any
// caller-supplied ones: x-amz-date, x-amz-content-sha256, then Accept and
// Content-Type unless the caller already set them. A String body's own MIME
// wins over the service content type.
func attachInitialHeaders(service Service, plan *requestPlan, amzDate, payloadHash string) {
	callerHeaders := plan.headers
	plan.headers = append(plan.headers,
		Pair{Name: "x-amz-date", Value: amzDate},
		Pair{Name: "x-amz-content-sha256", Value: payloadHash},
	)
	if !hasHeader(callerHeaders, "accept") {
		plan.headers = append(plan.headers, Pair{Name: "Accept", Value: service.AcceptType()})
	}
	if !hasHeader(callerHeaders, "content-type") {
		contentType := service.ContentType()
		if plan.hasMIME {
			contentType = plan.mime
		}
		plan.headers = append(plan.headers, Pair{Name: "Content-Type", Value: contentType})
	}
}

func hasHeader(pairs []Pair, name string) bool {
	for _, p := range pairs {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

// collapseSpaces trims the value and folds internal whitespace runs to a
// single space, per the SigV4 header canonicalization rule.
func collapseSpaces(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

// canonicalHeaders builds the sorted name:value block and the SignedHeaders
// line. Host is synthetic, resolved from the service, because it is not in
// the request's own header list at this point. content-type and accept are
// filtered out: transports rewrite them, so a signature over them would not
// verify server-side.
func canonicalHeaders(host string, headers []Pair) (block string, signedHeaders string) {
	entries := []Pair{{Name: "host", Value: collapseSpaces(host)}}
	for _, h := range headers {
		name := strings.ToLower(h.Name)
		if name == "content-type" || name == "accept" {
			continue
		}
		entries = append(entries, Pair{Name: name, Value: collapseSpaces(h.Value)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		block += e.Name + ":" + e.Value + "\n"
		names = append(names, e.Name)
	}
	return block, strings.Join(names, ";")
}

// canonicalRequest builds the normalized text whose hash is signed. V4
// encodes the path twice, the S3 scheme would encode it once.
func canonicalRequest(service Service, plan requestPlan, payloadHash string) (canonical string, signedHeaders string) {
	block, signedHeaders := canonicalHeaders(service.Host(), plan.headers)

	s := strings.ToUpper(plan.method) + "\n"
	s += canonicalURI(plan.path, service.Signer == SignV4) + "\n"
	s += canonicalQueryString(plan.query) + "\n"
	s += block
	s += "\n"
	s += signedHeaders + "\n"
	s += payloadHash

	return s, signedHeaders
}

// SignedRequest is a request ready for the transport: fully decorated
// headers and an absolute URL.
type SignedRequest struct {
	Method  string
	URL     string
	Headers []Pair
}

func requestURL(service Service, plan requestPlan) string {
	return "https://" + service.Host() + canonicalURI(plan.path, false) + QueryString(plan.query)
}

// sign runs the full SigV4 pipeline over a shaped request. It cannot fail:
// credentials are not validated here.
func sign(service Service, creds Credentials, now time.Time, plan requestPlan) SignedRequest {
	amzDate := FormatPosix(now)
	shortDate := amzDate[:8]
	payloadHash := fmt.Sprintf("%x", getSHA256(plan.payload))
	attachInitialHeaders(service, &plan, amzDate, payloadHash)

	canonical, signedHeaders := canonicalRequest(service, plan, payloadHash)
	scope := CredentialScope(shortDate, service.Region(), service.signingName())
	stringToSign := StringToSign(amzDate, scope, canonical)
	signingKey := SigningKey(creds.SecretAccessKey, shortDate, service.Region(), service.signingName())
	signature := SignatureHex(signingKey, stringToSign)

	headers := append(plan.headers, Pair{
		Name: "Authorization",
		Value: signingAlgorithm + " Credential=" + creds.AccessKeyID + "/" + scope +
			", SignedHeaders=" + signedHeaders + ", Signature=" + signature,
	})
	// The session token rides along unsigned
	if creds.SessionToken != "" {
		headers = append(headers, Pair{Name: "x-amz-security-token", Value: creds.SessionToken})
	}

	return SignedRequest{
		Method:  strings.ToUpper(plan.method),
		URL:     requestURL(service, plan),
		Headers: headers,
	}
}

// prepare is the unsigned variant: same header augmentation, no
// Authorization, no key derivation.
func prepare(service Service, now time.Time, plan requestPlan) SignedRequest {
	amzDate := FormatPosix(now)
	payloadHash := fmt.Sprintf("%x", getSHA256(plan.payload))
	attachInitialHeaders(service, &plan, amzDate, payloadHash)

	return SignedRequest{
		Method:  strings.ToUpper(plan.method),
		URL:     requestURL(service, plan),
		Headers: plan.headers,
	}
}
