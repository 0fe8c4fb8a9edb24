package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/ngo-dashboard/infra/cloudrun"
	"github.com/GregMSThompson/ngo-dashboard/infra/docker"
	"github.com/GregMSThompson/ngo-dashboard/infra/firestore"
	"github.com/GregMSThompson/ngo-dashboard/infra/identity"
	"github.com/GregMSThompson/ngo-dashboard/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// identity platform backs the optional firebase auth middleware
		ident, err := identity.SetupIdentity(ctx, prov)
		if err != nil {
			return err
		}

		// firestore holds the grant application cache slot
		fs, err := firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, ident, fs, repo)
		return err
	})
}
