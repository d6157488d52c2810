package utils

// PartitionMap splits NCells cells into ParallelDegree contiguous buckets
type PartitionMap struct {
	NCells         int
	ParallelDegree int
	Partitions     [][2]int // Beginning and end (exclusive) cell index of each bucket
}

func NewPartitionMap(ParallelDegree, NCells int) (pm *PartitionMap) {
	if ParallelDegree < 1 {
		ParallelDegree = 1
	}
	pm = &PartitionMap{
		NCells:         NCells,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

// Split1D returns the cell range of one bucket, the remainder is spread over the first
// buckets so sizes differ by at most one
func (pm *PartitionMap) Split1D(bucketNum int) (bucket [2]int) {
	var (
		Npart            = pm.NCells / pm.ParallelDegree
		remainder        = pm.NCells % pm.ParallelDegree
		startAdd, endAdd int
	)
	if remainder != 0 {
		if bucketNum+1 > remainder {
			startAdd = remainder
		} else {
			startAdd = bucketNum
			endAdd = 1
		}
	}
	bucket[0] = bucketNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(bucketNum int) int {
	kMin, kMax := pm.GetBucketRange(bucketNum)
	return kMax - kMin
}
