package awsx

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cognitoidentityprovider"
)

// CognitoAPI is the slice of the Cognito client the provider uses.
type CognitoAPI interface {
	AdminEnableUserWithContext(ctx aws.Context, input *cognitoidentityprovider.AdminEnableUserInput, opts ...request.Option) (*cognitoidentityprovider.AdminEnableUserOutput, error)
}

// IdentityProvider re-enables Cognito login identities after a
// soft-delete reactivation. Satisfies account.IdentityProvider.
type IdentityProvider struct {
	client     CognitoAPI
	userPoolID string
}

// NewIdentityProvider creates a provider for one user pool. The
// external identity ref on the account record is the Cognito username.
func NewIdentityProvider(client CognitoAPI, userPoolID string) *IdentityProvider {
	return &IdentityProvider{client: client, userPoolID: userPoolID}
}

// NewIdentityProviderFromSession creates a provider using the default
// Cognito client for the given session.
func NewIdentityProviderFromSession(sess *session.Session, userPoolID string) *IdentityProvider {
	return NewIdentityProvider(cognitoidentityprovider.New(sess), userPoolID)
}

// ReenableIdentity re-enables the login identity referenced by ref.
func (p *IdentityProvider) ReenableIdentity(ctx context.Context, ref string) error {
	_, err := p.client.AdminEnableUserWithContext(ctx, &cognitoidentityprovider.AdminEnableUserInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(ref),
	})
	if err != nil {
		return fmt.Errorf("admin enable user %q: %w", ref, err)
	}
	return nil
}
